package amazon

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const signedHeaders = "content-type;host;x-amz-date;x-amz-target"

// signature carries the pieces of an AWS SigV4 signing pass
type signature struct {
	Timestamp           string
	CredentialScope     string
	AuthorizationHeader string
}

// signRequest signs a PA-API GetItems payload with AWS Signature Version 4.
func signRequest(payload, accessKey, secretKey string, now time.Time) signature {
	timestamp := now.Format("20060102T150405Z")
	date := timestamp[:8]
	scope := fmt.Sprintf("%s/%s/%s/aws4_request", date, region, service)

	// Derive the signing key
	key := hmacSHA256([]byte("AWS4"+secretKey), date)
	key = hmacSHA256(key, region)
	key = hmacSHA256(key, service)
	key = hmacSHA256(key, "aws4_request")

	canonicalRequest := strings.Join([]string{
		"POST",
		apiPath,
		"",
		fmt.Sprintf("content-type:application/json; charset=UTF-8\nhost:%s\nx-amz-date:%s\nx-amz-target:%s", endpoint, timestamp, apiTarget),
		"",
		signedHeaders,
		sha256Hex(payload),
	}, "\n")

	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		timestamp,
		scope,
		sha256Hex(canonicalRequest),
	}, "\n")

	sig := hex.EncodeToString(hmacSHA256(key, stringToSign))

	return signature{
		Timestamp:       timestamp,
		CredentialScope: scope,
		AuthorizationHeader: fmt.Sprintf(
			"AWS4-HMAC-SHA256 Credential=%s/%s, SignedHeaders=%s, Signature=%s",
			accessKey, scope, signedHeaders, sig,
		),
	}
}

func hmacSHA256(key []byte, data string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return h.Sum(nil)
}

func sha256Hex(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
