package domain

import "time"

// Money — денежная сумма в минорных единицах валюты (пайсы, копейки).
type Money struct {
	Amount   int64
	Currency string
}

func NewMoney(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// ItemKey — ключ идентичности позиции корзины.
// Две добавленные позиции с одинаковым ключом сливаются в одну строку.
type ItemKey struct {
	VariantID string
	Color     string
	Size      string
}

// CartItem описывает одну строку корзины
type CartItem struct {
	VariantID string
	ProductID string
	Title     string
	UnitPrice Money
	Quantity  int
	Color     string
	Size      string
	ImageURL  string
}

// Key возвращает ключ идентичности позиции.
func (i CartItem) Key() ItemKey {
	return ItemKey{VariantID: i.VariantID, Color: i.Color, Size: i.Size}
}

// Cart — агрегат корзины одной сессии.
// Порядок позиций — порядок добавления.
type Cart struct {
	SessionID string
	Items     []CartItem
	Discount  *Discount
	UpdatedAt time.Time
}

func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
	}
}

// Subtotal возвращает сумму unitPrice*quantity по всем позициям.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, item := range c.Items {
		sum += item.UnitPrice.Amount * int64(item.Quantity)
	}
	return sum
}

// SubtotalChecked возвращает подытог и false при переполнении int64.
// Цены и количества неотрицательны, поэтому отрицательный промежуточный
// результат может означать только переполнение.
func (c *Cart) SubtotalChecked() (int64, bool) {
	var sum int64
	for _, item := range c.Items {
		line := item.UnitPrice.Amount * int64(item.Quantity)
		if item.Quantity != 0 && line/int64(item.Quantity) != item.UnitPrice.Amount {
			return 0, false
		}
		sum += line
		if sum < 0 {
			return 0, false
		}
	}
	return sum, true
}

// ItemCount возвращает суммарное количество единиц товара в корзине.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty сообщает, пуста ли корзина.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem возвращает индекс позиции с данным ключом или -1.
func (c *Cart) FindItem(key ItemKey) int {
	for i, item := range c.Items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// Currency возвращает валюту корзины (валюту первой позиции).
// Для пустой корзины возвращает пустую строку.
func (c *Cart) Currency() string {
	if len(c.Items) == 0 {
		return ""
	}
	return c.Items[0].UnitPrice.Currency
}

// Clone возвращает глубокую копию корзины.
func (c *Cart) Clone() *Cart {
	clone := &Cart{
		SessionID: c.SessionID,
		UpdatedAt: c.UpdatedAt,
	}
	if len(c.Items) > 0 {
		clone.Items = make([]CartItem, len(c.Items))
		copy(clone.Items, c.Items)
	}
	if c.Discount != nil {
		d := *c.Discount
		clone.Discount = &d
	}
	return clone
}
