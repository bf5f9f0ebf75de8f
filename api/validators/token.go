package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/fondita/fondita-backend/pkg/errors"
)

// ExtractBearerToken pulls the raw JWT out of the Authorization header.
func ExtractBearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", pkgerrors.New(pkgerrors.CodeNoToken, "")
	}
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", pkgerrors.New(pkgerrors.CodeInvalidToken, "")
	}
	token := strings.TrimSpace(header[7:])
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeNoToken, "")
	}
	return token, nil
}
