package utils

import (
	"github.com/duke-git/lancet/v2/cryptor"
	"github.com/duke-git/lancet/v2/strutil"
)

// IsEmpty reports whether s is blank.
func IsEmpty(s string) bool {
	return strutil.IsBlank(s)
}

// Trim strips surrounding whitespace.
func Trim(s string) string {
	return strutil.Trim(s)
}

// MD5 returns the hex MD5 digest of s.
func MD5(s string) string {
	return cryptor.Md5String(s)
}
