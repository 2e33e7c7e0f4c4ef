// service/entitlement/entitlement.go
//
// The entitlement gate: pure functions of (session, book) deciding what a
// read or download action is allowed to do. Both actions apply the same rule;
// read degrades to a bounded preview instead of refusing.
package entitlement

import (
	"errors"

	"digitallibrary/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrLoginRequired   ErrCode = "LOGIN_REQUIRED"
	ErrUpgradeRequired ErrCode = "UPGRADE_REQUIRED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }

// Code extracts the error code, or "" for plain errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// previewFragment bounds an unentitled read to a single zoomed-out page.
const previewFragment = "#page=1&zoom=75"

// CanAccess is the gate itself: a session must exist, and either it is
// premium or the book is free.
func CanAccess(u *model.User, b model.Book) bool {
	return u != nil && (u.IsPremium || b.Free)
}

// ReadGrant is what a read action receives: the content URL, possibly
// truncated to a preview.
type ReadGrant struct {
	URL     string `json:"url"`
	Preview bool   `json:"preview"`
}

// Read never refuses: denied access yields a degraded preview reference.
func Read(u *model.User, b model.Book) ReadGrant {
	if CanAccess(u, b) {
		return ReadGrant{URL: b.PDFURL}
	}
	return ReadGrant{URL: b.PDFURL + previewFragment, Preview: true}
}

// Download returns the download locator or a coded refusal: anonymous users
// must log in, non-premium users must upgrade for premium books.
func Download(u *model.User, b model.Book) (string, error) {
	if u == nil {
		return "", codedError{code: ErrLoginRequired}
	}
	if !CanAccess(u, b) {
		return "", codedError{code: ErrUpgradeRequired}
	}
	return b.DownloadURL, nil
}
