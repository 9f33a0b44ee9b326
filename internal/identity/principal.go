package identity

// Role mengikuti model akses tiga tingkat: admin, hr, employee.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// Principal adalah caller terautentikasi untuk satu request.
// Tidak pernah di-cache melewati umur request.
type Principal struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// ParseRole menerima nilai bebas dari storage/token. Role yang tidak
// dikenal diturunkan ke employee (least privilege).
func ParseRole(v string) Role {
	switch Role(v) {
	case RoleAdmin:
		return RoleAdmin
	case RoleHR:
		return RoleHR
	default:
		return RoleEmployee
	}
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

func (p *Principal) CanAccessAdminSurface() bool {
	return p.isAdminOrHR()
}

func (p *Principal) CanManageEmployees() bool {
	return p.isAdminOrHR()
}

func (p *Principal) CanManagePayroll() bool {
	return p.isAdminOrHR()
}

func (p *Principal) CanViewAllData() bool {
	return p.isAdminOrHR()
}

func (p *Principal) isAdminOrHR() bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case RoleAdmin, RoleHR:
		return true
	default:
		return false
	}
}
