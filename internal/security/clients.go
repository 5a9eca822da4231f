package security

// In-memory client registry (replace with DB/config later).
type Client struct {
	ID      string
	Secret  string
	Perms   []string // e.g. {"orders.read","orders.write"}
	Enabled bool
}

var Clients = map[string]Client{
	"web-client": {
		ID:      "web-client",
		Secret:  "web-client-secret",
		Perms:   []string{"orders.read", "orders.write", "products.read"},
		Enabled: true,
	},
	"admin-cli": {
		ID:      "admin-cli",
		Secret:  "admin-cli-secret",
		Perms:   []string{"orders.read", "orders.write", "orders.admin", "products.read", "products.write"},
		Enabled: true,
	},
	"svc-order-api": {
		ID:      "svc-order-api",
		Secret:  "order-api-secret",
		Perms:   []string{"products.read"},
		Enabled: true,
	},
}
