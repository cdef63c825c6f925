package account

import "quipu/internal/domain"

// Repository defines persistence operations for accounts.
type Repository interface {
	domain.CatalogRepository[*Account]
}
