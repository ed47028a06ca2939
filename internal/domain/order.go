package domain

const PaymentCompleted = "completed"

type Order struct {
	ID            int64  `db:"id" json:"id"`
	UserID        int64  `db:"user_id" json:"userId"`
	TotalAmount   int64  `db:"total_amount" json:"totalAmount"`
	PaymentMethod string `db:"payment_method" json:"paymentMethod"`
	PaymentStatus string `db:"payment_status" json:"paymentStatus"`
	TransactionID string `db:"transaction_id" json:"transactionId"`
	CreatedAt     string `db:"created_at" json:"createdAt"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

type OrderItem struct {
	OrderID      int64  `db:"order_id" json:"-"`
	ProductTitle string `db:"product_title" json:"title"`
	ProductPrice int64  `db:"product_price" json:"price"`
	Quantity     int    `db:"quantity" json:"quantity"`
}
