package session

import "net/url"

// Callback carries the query parameters of an authentication response
// redirect from the provider.  Empty strings mean the parameter was absent.
type Callback struct {
	// Iss is the issuer that produced the response.
	Iss string

	// State is the correlation token echoed back by the provider.
	State string

	// Code is the authorization code to exchange for a token.
	Code string

	// Error and ErrorDescription carry a provider-reported failure.
	Error            string
	ErrorDescription string
}

// CallbackFromValues builds a Callback from a redirect request's query
// parameters.
func CallbackFromValues(v url.Values) Callback {
	return Callback{
		Iss:              v.Get("iss"),
		State:            v.Get("state"),
		Code:             v.Get("code"),
		Error:            v.Get("error"),
		ErrorDescription: v.Get("error_description"),
	}
}
