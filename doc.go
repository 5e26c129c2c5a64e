// Package auth implements the credential and session lifecycle for
// the Linguate API: registration with email verification, login,
// cookie based sessions backed by signed JWT pairs, session refresh,
// and logout.
//
// Passwords and refresh tokens are stored only as argon2id digests.
// Access, refresh, and verification tokens are signed with
// independent secrets, so no token class can stand in for another.
package auth
