package tools

import (
	"encoding/base64"
	"strings"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

// defaultAlgorithm is what dig and nsupdate assume for "-y name:secret".
const defaultAlgorithm = "hmac-md5"

var algorithms = map[string]string{
	"hmac-md5":    dns.HmacMD5,
	"hmac-sha1":   dns.HmacSHA1,
	"hmac-sha224": dns.HmacSHA224,
	"hmac-sha256": dns.HmacSHA256,
	"hmac-sha384": dns.HmacSHA384,
	"hmac-sha512": dns.HmacSHA512,
}

// Key is a TSIG key as accepted by "dig -y" and "nsupdate -y".
type Key struct {
	Algorithm string
	Name      string
	Secret    string
}

// ParseKey reads a key in the form [alg:]name:secret.
func ParseKey(s string) (Key, error) {
	var k Key

	parts := strings.Split(strings.TrimSpace(s), ":")

	switch len(parts) {
	case 2: //nolint:mnd
		k = Key{Algorithm: defaultAlgorithm, Name: parts[0], Secret: parts[1]}
	case 3: //nolint:mnd
		k = Key{Algorithm: strings.ToLower(parts[0]), Name: parts[1], Secret: parts[2]}
	default:
		return Key{}, errors.Wrap(ErrInvalidKey, "expected [alg:]name:secret")
	}

	if _, ok := algorithms[k.Algorithm]; !ok {
		return Key{}, errors.Wrapf(ErrInvalidKey, "unsupported algorithm %s", k.Algorithm)
	}

	if k.Name == "" {
		return Key{}, errors.Wrap(ErrInvalidKey, "empty key name")
	}

	if _, err := base64.StdEncoding.DecodeString(k.Secret); err != nil || k.Secret == "" {
		return Key{}, errors.Wrap(ErrInvalidKey, "secret is not base64")
	}

	return k, nil
}

// CanonicalAlgorithm returns the algorithm as used on the wire.
func (k Key) CanonicalAlgorithm() string {
	return algorithms[k.Algorithm]
}

// String returns the key in the form alg:name:secret.
func (k Key) String() string {
	return k.Algorithm + ":" + k.Name + ":" + k.Secret
}
