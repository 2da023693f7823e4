package id

import (
	"crypto/md5"
	"io"
	"strings"

	"github.com/gofrs/uuid"
)

// GenTraceID new normal traceID
func GenTraceID() string {
	return GenUUIDString()
}

// TraceIDFrom new traceID from text
func TraceIDFrom(text string) string {
	return UUIDFromString(text)
}

// GenUUIDString new uuid
func GenUUIDString() string {
	return uuid.Must(uuid.NewV4()).String()
}

// UUIDFromString md5 based uuid, the same text always yields the same id
func UUIDFromString(text string) string {
	h := md5.New()
	_, _ = io.WriteString(h, strings.TrimSpace(text))
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}
