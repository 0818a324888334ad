package common

// AccessTokenHeaderName is the HTTP header that carries the access token
// on API requests.
const AccessTokenHeaderName = "x-access-token"
