package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
)

// The conflict payload must report its count under the key the service chose,
// not a hardcoded one: a blocked category delete talks about products, a
// blocked customer delete about orders.
func TestRespondErrorConflictCountKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		key  string
		want int64
	}{
		{
			name: "customer blocked by orders",
			err:  &apierror.ReferentialConflictError{Detail: "No se puede eliminar el cliente: tiene 3 ordenes asociadas", CountKey: "orders_count", Count: 3},
			key:  "orders_count",
			want: 3,
		},
		{
			name: "category blocked by products",
			err:  &apierror.ReferentialConflictError{Detail: "No se puede eliminar la categoria: tiene 2 productos asociados", CountKey: "products_count", Count: 2},
			key:  "products_count",
			want: 2,
		},
		{
			name: "missing key falls back",
			err:  &apierror.ReferentialConflictError{Detail: "Registro en uso", Count: 1},
			key:  "blocking_count",
			want: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)

			require.Equal(t, http.StatusConflict, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["detail"])
			assert.EqualValues(t, tc.want, body[tc.key])
		})
	}
}
