// Package oauth implements the browser-based OAuth 2.0 authorization code
// flow against LinkedIn.
//
// The flow is a linear, one-shot state machine: generate an anti-forgery
// state token, start a loopback callback listener, open the authorization
// URL in the operator's browser, wait for exactly one redirect, exchange the
// authorization code for an access token, fetch the authenticated identity,
// and persist the resulting credential record. Every failure is terminal;
// there are no retries.
//
// The callback wait is bounded (CallbackTimeout) so an abandoned browser
// interaction cannot hang the process indefinitely.
package oauth
