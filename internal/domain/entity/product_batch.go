package entity

import "time"

// ProductBatch es un lote recibido de un producto con una única fecha de vencimiento.
// Stock está en unidades base y sólo disminuye (ventas) hasta que el lote se elimina.
type ProductBatch struct {
	ID         string
	ProductID  string
	BatchCode  string // código impreso en la caja, no necesariamente único
	Stock      int
	ExpiryDate time.Time
	EntryDate  time.Time
}
