package glyphsvc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadResponse_FailedAndMessage(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantFailed bool
		wantMsg    string
	}{
		{"success", `{"filename":"a.png","base64_image":"AAAA"}`, false, defaultServiceMessage},
		{"status error", `{"status":"ERROR"}`, true, defaultServiceMessage},
		{"status ok with message", `{"status":"ok","message":"fine"}`, false, "fine"},
		{"error string", `{"error":"bad format"}`, true, "bad format"},
		{"error bool", `{"error":true,"message":"too large"}`, true, "too large"},
		{"error false", `{"error":false,"base64_image":"AAAA"}`, false, defaultServiceMessage},
		{"error blank", `{"error":"  "}`, false, defaultServiceMessage},
		{"error object", `{"error":{"code":7}}`, true, defaultServiceMessage},
		{"error empty object", `{"error":{},"base64_image":"AAAA"}`, false, defaultServiceMessage},
		{"error zero", `{"error":0,"base64_image":"AAAA"}`, false, defaultServiceMessage},
		{"error null", `{"error":null,"base64_image":"AAAA"}`, false, defaultServiceMessage},
		{"detail string", `{"status":"error","detail":"cannot identify image file"}`, true, "cannot identify image file"},
		{"detail list", `{"status":"error","detail":[{"loc":["body","image"],"msg":"field required"}]}`, true, "field required"},
		{"message wins", `{"error":"short","message":"long form"}`, true, "long form"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var resp UploadResponse
			require.NoError(t, json.Unmarshal([]byte(tc.body), &resp))
			assert.Equal(t, tc.wantFailed, resp.Failed())
			assert.Equal(t, tc.wantMsg, resp.ErrorMessage())
		})
	}
}

func TestUploadResponse_ResultTrimsPayload(t *testing.T) {
	res, err := UploadResponse{Filename: "a.png", Base64Image: " AAAA\n"}.result()
	require.NoError(t, err)
	assert.Equal(t, "AAAA", res.Payload)
	assert.Equal(t, "a.png", res.Filename)
}
