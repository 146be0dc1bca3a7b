package domain

type UserRole string

const (
	RoleFarmer   UserRole = "farmer"
	RoleRetailer UserRole = "retailer"
)

// User is the authenticated account. Only retailers may mutate a cart.
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}
