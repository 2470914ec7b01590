package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa el costo promedio ponderado por caja (servicio de dominio).
// NuevoCosto = ((CajasActuales * CostoActual) + (CajasEntrada * CostoEntrada)) / (CajasActuales + CajasEntrada)
// Las cajas actuales se derivan del stock en unidades base. Si el costo actual no está
// configurado (cero) el nuevo costo es directamente el de entrada.
func CostCalculator(unidadesActuales, unidadesPorCaja int, costoActual decimal.Decimal, cajasEntrada int, costoEntrada decimal.Decimal) decimal.Decimal {
	if cajasEntrada <= 0 {
		return costoActual
	}
	if costoActual.IsZero() || unidadesActuales <= 0 {
		return costoEntrada
	}
	if unidadesPorCaja < 1 {
		unidadesPorCaja = 1
	}
	cajasActuales := decimal.NewFromInt(int64(unidadesActuales)).Div(decimal.NewFromInt(int64(unidadesPorCaja)))
	entrada := decimal.NewFromInt(int64(cajasEntrada))
	num := cajasActuales.Mul(costoActual).Add(entrada.Mul(costoEntrada))
	return num.Div(cajasActuales.Add(entrada)).Round(2)
}
