// Package common contains shared constants, sentinel errors and small helpers
// used across the dashboard server and its tools.
package common

// SessionCookieName is the name of the cookie carrying the signed session token.
const SessionCookieName = "oscar.sid"

// DateLayout is the canonical rendering of calendar dates on the wire and in SQL.
const DateLayout = "2006-01-02"
