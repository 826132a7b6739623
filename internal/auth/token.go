// package auth implements the OAuth2 authorization code flow with PKCE
// against the Spotify accounts service, including the loopback callback
// receiver the browser redirects to.
package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// ExpiryBuffer is subtracted from the token lifetime so a token that is
// about to lapse mid-request already counts as expired.
const ExpiryBuffer = 60 * time.Second

// Token is the persisted form of a Spotify OAuth token.
//
// ExpiresAt is an absolute unix timestamp computed at capture time, so the
// stored token stays meaningful across process restarts.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

var timeNow = time.Now

// NewToken converts an [oauth2.Token] obtained from an exchange or refresh
// into the persisted form, capturing the current time.
func NewToken(t *oauth2.Token, scope string) *Token {
	tok := &Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		Scope:        scope,
		ExpiresAt:    t.Expiry.Unix(),
		RefreshToken: t.RefreshToken,
	}
	if s, ok := t.Extra("scope").(string); ok && s != "" {
		tok.Scope = s
	}
	return tok
}

// Expired reports whether the token is expired or within [ExpiryBuffer] of
// expiring.
func (t *Token) Expired() bool {
	return timeNow().Add(ExpiryBuffer).Unix() >= t.ExpiresAt
}

// ExpiresIn returns the number of seconds until expiry, clamped at zero.
func (t *Token) ExpiresIn() int64 {
	remaining := t.ExpiresAt - timeNow().Unix()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// OAuth2 converts back to an [oauth2.Token] for use with token sources.
func (t *Token) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       time.Unix(t.ExpiresAt, 0),
	}
}
