// Package kayako is a client for the Kayako helpdesk REST API.
//
// Every request is authenticated with the API key plus a fresh salt and an
// HMAC-SHA256 signature of that salt, keyed by the shared secret. Responses
// are XML and are decoded into a generic nested map: child elements become
// keys, attributes are prefixed with "@" and the text of an element that
// also carries attributes lives under "#text".
package kayako
