package cleanup_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git-lost/internal/cleanup"
)

func TestIOConfirmationPrompterResponses(testInstance *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectConfirmed bool
	}{
		{name: "short_affirmative", input: "y\n", expectConfirmed: true},
		{name: "long_affirmative", input: "YES\n", expectConfirmed: true},
		{name: "explicit_decline", input: "n\n", expectConfirmed: false},
		{name: "empty_response_declines", input: "\n", expectConfirmed: false},
		{name: "end_of_input_declines", input: "", expectConfirmed: false},
		{name: "unrelated_text_declines", input: "sure, why not\n", expectConfirmed: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			prompter := cleanup.NewIOConfirmationPrompter(strings.NewReader(testCase.input), outputBuffer)

			confirmed, confirmationError := prompter.Confirm("Delete it? [y/N] ")
			require.NoError(testInstance, confirmationError)
			require.Equal(testInstance, testCase.expectConfirmed, confirmed)
			require.Equal(testInstance, "Delete it? [y/N] ", outputBuffer.String())
		})
	}
}
