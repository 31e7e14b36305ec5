package callable

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/useradmin/internal/authz"
	"github.com/gogotex/useradmin/pkg/metrics"
)

// request is the inbound envelope: {"data": {...}}
type request struct {
	Data json.RawMessage `json:"data"`
}

// Func is an operation invoked through the callable envelope. claims is nil
// when the caller presented no credential.
type Func[Req any, Res any] func(ctx context.Context, claims *authz.Claims, req Req) (Res, error)

// Handle adapts fn to a gin handler. Responses are {"result": <Res>} on
// success and {"error": {"status", "message"}} on failure.
func Handle[Req any, Res any](operation string, fn Func[Req, Res]) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			writeError(c, operation, InvalidArgument("Bad Request: callable functions only accept POST"))
			return
		}
		var env request
		if err := c.ShouldBindJSON(&env); err != nil {
			writeError(c, operation, InvalidArgument("Bad Request: invalid request body"))
			return
		}
		var in Req
		if len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, &in); err != nil {
				writeError(c, operation, InvalidArgument("Bad Request: invalid data"))
				return
			}
		}

		out, err := fn(c.Request.Context(), authz.FromContext(c), in)
		if err != nil {
			writeError(c, operation, AsError(err))
			return
		}
		metrics.AdminCalls.WithLabelValues(operation, CodeOK.Status()).Inc()
		c.JSON(http.StatusOK, gin.H{"result": out})
	}
}

// WriteError encodes err in the callable error envelope and aborts the chain.
func WriteError(c *gin.Context, err error) {
	ce := AsError(err)
	c.AbortWithStatusJSON(ce.Code.HTTPStatus(), gin.H{"error": gin.H{"status": ce.Code.Status(), "message": ce.Message}})
}

func writeError(c *gin.Context, operation string, ce *Error) {
	metrics.AdminCalls.WithLabelValues(operation, ce.Code.Status()).Inc()
	WriteError(c, ce)
}
