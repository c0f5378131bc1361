package oidc

import (
	"errors"
)

var (
	ErrInvalidParameter              = errors.New("invalid parameter")
	ErrNilParameter                  = errors.New("nil parameter")
	ErrInvalidCACert                 = errors.New("invalid CA certificate")
	ErrInvalidIssuer                 = errors.New("invalid issuer")
	ErrIDGeneratorFailed             = errors.New("id generation failed")
	ErrMissingIDToken                = errors.New("id_token is missing")
	ErrIDTokenVerificationFailed     = errors.New("id_token verification failed")
	ErrInvalidAudience               = errors.New("invalid audience")
	ErrInvalidNonce                  = errors.New("invalid nonce")
	ErrUserInfoFailed                = errors.New("user info failed")
	ErrIntrospectionFailed           = errors.New("token introspection failed")
	ErrMissingIntrospectionEndpoint  = errors.New("provider does not advertise an introspection endpoint")
	ErrUnsupportedIntrospectionToken = errors.New("token is not introspectable")
)
