package pkg

import "errors"

var (
	// Input errors 📥
	ErrUnknownFormat = errors.New("❌ not an ICO or ICNS container")
	ErrEmptyInput    = errors.New("❌ input is empty")

	// Verification errors 🔍
	ErrVerificationFailed = errors.New("❌ icon verification failed")
)
