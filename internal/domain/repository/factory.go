package repository

// Factory produces the domain repositories from one storage backend.
type Factory interface {
	Orders() OrderRepository
	Events() POSEventRepository
	Promotions() PromotionRepository
}
