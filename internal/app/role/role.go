package role

// Role определяет уровень доступа пользователя в маркетплейсе
type Role int

const (
	Buyer Role = iota // обычный пользователь, делает ставки
	Seller
	Admin
)

func (r Role) String() string {
	switch r {
	case Seller:
		return "seller"
	case Admin:
		return "admin"
	default:
		return "buyer"
	}
}

// Parse преобразует строковую роль из БД в Role
func Parse(s string) Role {
	switch s {
	case "seller":
		return Seller
	case "admin":
		return Admin
	default:
		return Buyer
	}
}
