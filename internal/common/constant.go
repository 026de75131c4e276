package common

// AccessTokenHeaderName is the HTTP header used to carry the access token on
// outbound API requests ("Authorization: Bearer <token>").
const AccessTokenHeaderName = "Authorization"
