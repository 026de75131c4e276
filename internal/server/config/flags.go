package config

import (
	"flag"
	"os"
	"time"

	"github.com/socialboard/socialboard/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string           HTTP bind address (e.g., ":8080")
//	-d string           PostgreSQL DSN
//	-s string           JWT HMAC secret key
//	-t int              access token validity, minutes
//	-r int              refresh token validity, minutes
//	-u string           S3 root user
//	-p string           S3 root password
//	-b string           S3 bucket name
//	-g string           S3 region
//	-e string           S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-public-base string public base URL for stored objects
//	-amqp string        AMQP broker URL (empty disables event publishing)
//	-exchange string    AMQP exchange name
//	-sched int          scheduler interval, seconds
//	-origin string      hosting origin for relay-message validation
//	-editor string      external editor base URL
//	-edit-timeout int   editing session timeout, minutes (0 = none)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-t", "-r", "-u", "-p", "-b", "-g", "-e",
		"-public-base", "-amqp", "-exchange", "-sched", "-origin", "-editor", "-edit-timeout",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "public-base", config.S3PublicBaseURL, "public base URL for stored objects")

	fs.StringVar(&config.AMQPURL, "amqp", config.AMQPURL, "AMQP broker URL")
	fs.StringVar(&config.AMQPExchange, "exchange", config.AMQPExchange, "AMQP exchange name")

	schedulerInterval := fs.Int("sched", int(config.SchedulerInterval.Seconds()), "scheduler interval (in seconds)")

	fs.StringVar(&config.HostOrigin, "origin", config.HostOrigin, "hosting origin")
	fs.StringVar(&config.EditorURL, "editor", config.EditorURL, "external editor base URL")

	editTimeout := fs.Int("edit-timeout", int(config.EditTimeout.Minutes()), "editing session timeout (in minutes, 0 disables)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
	config.SchedulerInterval = time.Duration(*schedulerInterval) * time.Second
	config.EditTimeout = time.Duration(*editTimeout) * time.Minute
}
