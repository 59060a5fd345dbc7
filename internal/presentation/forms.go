package presentation

import (
	"net/http"

	"github.com/RaikyD/orders-tracker/internal/application"
)

// postField returns nil when key was not submitted at all, so the services
// can tell a missing field from an empty one.
func postField(r *http.Request, key string) *string {
	vs, ok := r.PostForm[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}

func decodeOrderForm(r *http.Request) application.OrderInput {
	_ = r.ParseForm()
	return application.OrderInput{
		CustomerName: postField(r, "customer_name"),
		Product:      postField(r, "product"),
		SalesChannel: postField(r, "sales_channel"),
		Date:         postField(r, "date"),
	}
}

func decodeItemForm(r *http.Request) application.ItemInput {
	_ = r.ParseForm()
	return application.ItemInput{
		Product:  postField(r, "product"),
		Supplier: postField(r, "supplier"),
	}
}
