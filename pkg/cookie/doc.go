// Package cookie writes and reads HTTP cookies with shared default attributes and
// optional protection of the value.
//
// A Manager is created with one or more secrets of at least 32 characters. The first
// secret is used for writing; every secret is accepted when reading so keys can be
// rotated without invalidating cookies already issued.
//
// Values can be stored with one of three encodings:
//
//   - Plain: the value as is
//   - Signed: base64 value plus an HMAC-SHA256 signature
//   - Encrypted: AES-256-GCM with a random nonce prepended to the ciphertext
//
// # Usage
//
//	import "github.com/dmitrymomot/sessionkit/pkg/cookie"
//
//	mgr, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")},
//	    cookie.WithSecure(true),
//	)
//	if err != nil {
//	    return err
//	}
//
//	_ = mgr.Write(w, cookie.Signed, "sid", id, cookie.WithLifetime(time.Hour))
//	id, err := mgr.Read(r, cookie.Signed, "sid")
//	mgr.Delete(w, "sid")
//
// Set/Get, SetSigned/GetSigned and SetEncrypted/GetEncrypted are shorthands for Write
// and Read with a fixed encoding.
//
// # Configuration
//
// Config can be populated from environment variables (COOKIE_SECRETS, COOKIE_PATH, ...)
// and turned into a Manager with NewFromConfig.
//
// # Errors
//
// ErrCookieNotFound is returned when the request carries no such cookie,
// ErrInvalidSignature and ErrDecryptionFailed when a protected value does not verify.
package cookie
