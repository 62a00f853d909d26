package playground

import (
	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/view"
)

// SourceSignals are the datastar signals posted by the editor.
type SourceSignals struct {
	Source string `json:"source"`
}

// TranslateRequest is the body of POST /api/translate.
type TranslateRequest struct {
	Source string `json:"source"`
	Mode   string `json:"mode"`
}

// TranslateResponse is returned by POST /api/translate.
type TranslateResponse struct {
	Readiness string `json:"readiness"`
	view.Output
}

// CompilerSource provides the compiler once the backend is ready.
// *backend.Manager implements it.
type CompilerSource interface {
	Compiler() (backend.Compiler, bool)
}
