package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	"github.com/finopslab/eipreaper/types"
)

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: "nope"}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want types.ErrorClass
	}{
		{"access denied", apiError("AccessDenied"), types.ErrorFatal},
		{"access denied exception", apiError("AccessDeniedException"), types.ErrorFatal},
		{"unauthorized operation", apiError("UnauthorizedOperation"), types.ErrorFatal},
		{"unrecognized client", apiError("UnrecognizedClientException"), types.ErrorFatal},
		{"invalid token", apiError("InvalidClientTokenId"), types.ErrorFatal},
		{"signature mismatch", apiError("SignatureDoesNotMatch"), types.ErrorFatal},
		{"expired token", apiError("ExpiredToken"), types.ErrorFatal},
		{"throttling", apiError("RequestLimitExceeded"), types.ErrorRecoverable},
		{"invalid address state", apiError("InvalidAddress.Locked"), types.ErrorRecoverable},
		{"address not found", apiError("InvalidAllocationID.NotFound"), types.ErrorRecoverable},
		{"plain error", errors.New("boom"), types.ErrorUnclassified},
		{"wrapped api error", fmt.Errorf("release: %w", apiError("AccessDenied")), types.ErrorFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "AccessDenied", ErrorCode(apiError("AccessDenied")))
	assert.Equal(t, "AccessDenied", ErrorCode(fmt.Errorf("wrapped: %w", apiError("AccessDenied"))))
	assert.Equal(t, "Unknown", ErrorCode(errors.New("boom")))
}
