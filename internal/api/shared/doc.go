// Package shared holds the request decoding, response envelopes and request
// context helpers used by the api package and its middleware.
package shared
