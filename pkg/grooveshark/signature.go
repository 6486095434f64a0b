package grooveshark

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
)

// calculateSignature generates the request signature for a serialized body.
//
// The signature is the HMAC-MD5 of the exact body bytes keyed with the client
// secret, hex encoded in lowercase. The server recomputes it over the bytes
// it receives, so the slice passed here must be the one sent on the wire.
func calculateSignature(body []byte, secret string) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether sig is the valid signature of body for
// the given secret. It is what the server does with every request and is
// useful for test doubles.
func VerifySignature(body []byte, secret, sig string) bool {
	want, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), want)
}
