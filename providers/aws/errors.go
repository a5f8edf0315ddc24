package aws

import (
	"errors"

	"github.com/aws/smithy-go"

	"github.com/finopslab/eipreaper/types"
)

// fatalCodes are the EC2/STS error codes that signal a systemic
// auth/credential breakdown. Every subsequent call in the run would fail
// the same way, so these abort the run instead of being swallowed.
var fatalCodes = map[string]struct{}{
	"AccessDenied":                {},
	"AccessDeniedException":       {},
	"UnauthorizedOperation":       {},
	"UnrecognizedClientException": {},
	"InvalidClientTokenId":        {},
	"SignatureDoesNotMatch":       {},
	"ExpiredToken":                {},
}

// Classify maps a release-call failure onto the closed error taxonomy.
// Errors that are not a recognized AWS API error shape are unclassified,
// which the reconciler treats as fatal rather than guessing intent.
func (p *Provider) Classify(err error) types.ErrorClass {
	return ClassifyError(err)
}

// ClassifyError is the provider-independent entry used by tests and the
// Lambda handler.
func ClassifyError(err error) types.ErrorClass {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return types.ErrorUnclassified
	}
	if _, fatal := fatalCodes[apiErr.ErrorCode()]; fatal {
		return types.ErrorFatal
	}
	return types.ErrorRecoverable
}

// ErrorCode extracts the machine-readable AWS error code for log fields.
func (p *Provider) ErrorCode(err error) string {
	return ErrorCode(err)
}

// ErrorCode extracts the machine-readable AWS error code for logging, or
// "Unknown" when the error carries none.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return "Unknown"
}
