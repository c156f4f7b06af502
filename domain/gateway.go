package domain

import (
	"context"
	"io"
)

// Mailer delivers a plaintext message to an email address. Delivery is
// attempted once; the caller decides whether a failure is fatal.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMSSender delivers a short text message to a phone number.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Hasher is the single one-way hashing capability shared by password
// storage and OTP codes.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves a street address to coordinates. A nil result with a
// nil error means the address could not be resolved.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

// ReportAI classifies civic issues and drafts the notification email sent
// to the mapped authority.
type ReportAI interface {
	ClassifyReport(ctx context.Context, description string) (string, error)
	DraftAuthorityEmail(ctx context.Context, report *Report) (string, error)
}

// MediaStore persists uploaded report media and returns a public URL.
type MediaStore interface {
	Upload(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (string, error)
}
