package egreso_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pampazon/wms-api/internal/application/dto"
	"github.com/pampazon/wms-api/internal/application/egreso"
	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store *memory.Store
	uc    *egreso.UseCase
	stock *memory.StockRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store: store,
		stock: memory.NewStockRepository(store),
	}
	f.uc = egreso.NewUseCase(
		memory.NewOrdenRepository(store),
		memory.NewClienteRepository(store),
		memory.NewProductoRepository(store),
		memory.NewTxRunner(store),
	)
	return f
}

func (f *fixture) nuevoCliente(t *testing.T, cuit string) *entity.Cliente {
	t.Helper()
	c := &entity.Cliente{
		ID:          uuid.New().String(),
		CUIT:        cuit,
		RazonSocial: "Cliente " + cuit,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, memory.NewClienteRepository(f.store).Create(c))
	return c
}

func (f *fixture) nuevoProducto(t *testing.T, codigo string) *entity.Producto {
	t.Helper()
	p := &entity.Producto{
		ID:            uuid.New().String(),
		Codigo:        codigo,
		Descripcion:   "Producto " + codigo,
		AltoCm:        decimal.NewFromInt(10),
		AnchoCm:       decimal.NewFromInt(10),
		ProfundidadCm: decimal.NewFromInt(10),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, memory.NewProductoRepository(f.store).Create(p))
	return p
}

func (f *fixture) nuevaPosicion(t *testing.T, clienteID string, nivel int) *entity.Posicion {
	t.Helper()
	p := &entity.Posicion{
		ID:         uuid.New().String(),
		Pasillo:    "A",
		Seccion:    1,
		Estanteria: 1,
		Nivel:      nivel,
		ClienteID:  clienteID,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, memory.NewPosicionRepository(f.store).Create(p))
	return p
}

func (f *fixture) cargarStock(t *testing.T, productoID, posicionID string, cantidad int) {
	t.Helper()
	require.NoError(t, f.stock.Upsert(&entity.StockItem{
		ID:         uuid.New().String(),
		ProductoID: productoID,
		PosicionID: posicionID,
		Cantidad:   cantidad,
		UpdatedAt:  time.Now(),
	}))
}

func (f *fixture) cantidadEnStock(t *testing.T, productoID, posicionID string) int {
	t.Helper()
	item, err := f.stock.Get(productoID, posicionID)
	require.NoError(t, err)
	if item == nil {
		return 0
	}
	return item.Cantidad
}

func ordenDeUnaLinea(numero, clienteID, productoID string, solicitada int) dto.CreateOrdenRequest {
	return dto.CreateOrdenRequest{
		Numero:                numero,
		ClienteID:             clienteID,
		NombreDestinatario:    "Destinatario",
		DireccionDestinatario: "Calle Falsa 123",
		Items: []dto.CreateOrdenItemRequest{
			{ProductoID: productoID, CantidadSolicitada: solicitada},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrden_NumeroDuplicadoFalla(t *testing.T) {
	f := newFixture(t)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")

	_, err := f.uc.CreateOrden(context.Background(), ordenDeUnaLinea("OP-0001", cliente.ID, producto.ID, 4))
	require.NoError(t, err)

	_, err = f.uc.CreateOrden(context.Background(), ordenDeUnaLinea("OP-0001", cliente.ID, producto.ID, 2))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateOrden_SinItemsFalla(t *testing.T) {
	f := newFixture(t)
	cliente := f.nuevoCliente(t, "20111111111")

	_, err := f.uc.CreateOrden(context.Background(), dto.CreateOrdenRequest{
		Numero:                "OP-0001",
		ClienteID:             cliente.ID,
		NombreDestinatario:    "Destinatario",
		DireccionDestinatario: "Calle Falsa 123",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyItems)
}

// ──────────────────────────────────────────────────────────────────────────────
// Preparación
// ──────────────────────────────────────────────────────────────────────────────

func TestPreparar_DebitaStockYPasaAPreparada(t *testing.T) {
	f := newFixture(t)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)
	f.cargarStock(t, producto.ID, posicion.ID, 10)

	orden, err := f.uc.CreateOrden(context.Background(), ordenDeUnaLinea("OP-0001", cliente.ID, producto.ID, 4))
	require.NoError(t, err)

	out, err := f.uc.Preparar(context.Background(), orden.ID, dto.PrepararOrdenRequest{
		Items: []dto.PrepararOrdenItemRequest{
			{ItemID: orden.Items[0].ID, PosicionID: posicion.ID},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.OrdenPreparada), out.Estado)
	require.NotNil(t, out.Items[0].PosicionID)
	assert.Equal(t, posicion.ID, *out.Items[0].PosicionID)
	assert.Equal(t, 6, f.cantidadEnStock(t, producto.ID, posicion.ID))
}

func TestPreparar_StockInsuficienteReportaCantidades(t *testing.T) {
	f := newFixture(t)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)
	f.cargarStock(t, producto.ID, posicion.ID, 6)

	orden, err := f.uc.CreateOrden(context.Background(), ordenDeUnaLinea("OP-0001", cliente.ID, producto.ID, 20))
	require.NoError(t, err)

	_, err = f.uc.Preparar(context.Background(), orden.ID, dto.PrepararOrdenRequest{
		Items: []dto.PrepararOrdenItemRequest{
			{ItemID: orden.Items[0].ID, PosicionID: posicion.ID},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var faltante *domain.InsufficientStockError
	require.ErrorAs(t, err, &faltante)
	assert.Equal(t, "X1", faltante.CodigoProducto)
	assert.Equal(t, 20, faltante.Solicitado)
	assert.Equal(t, 6, faltante.Disponible)

	// Ni el stock ni la orden deben haber cambiado.
	assert.Equal(t, 6, f.cantidadEnStock(t, producto.ID, posicion.ID))
	releida, err := f.uc.GetByID(orden.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrdenPendiente), releida.Estado)
	assert.Nil(t, releida.Items[0].PosicionID)
}

func TestPreparar_FallaEnUnaLineaDeshaceTodosLosDebitos(t *testing.T) {
	f := newFixture(t)
	cliente := f.nuevoCliente(t, "20111111111")
	x1 := f.nuevoProducto(t, "X1")
	x2 := f.nuevoProducto(t, "X2")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)
	f.cargarStock(t, x1.ID, posicion.ID, 10)
	f.cargarStock(t, x2.ID, posicion.ID, 1)

	orden, err := f.uc.CreateOrden(context.Background(), dto.CreateOrdenRequest{
		Numero:                "OP-0001",
		ClienteID:             cliente.ID,
		NombreDestinatario:    "Destinatario",
		DireccionDestinatario: "Calle Falsa 123",
		Items: []dto.CreateOrdenItemRequest{
			{ProductoID: x1.ID, CantidadSolicitada: 4},
			{ProductoID: x2.ID, CantidadSolicitada: 5},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.Preparar(context.Background(), orden.ID, dto.PrepararOrdenRequest{
		Items: []dto.PrepararOrdenItemRequest{
			{ItemID: orden.Items[0].ID, PosicionID: posicion.ID},
			{ItemID: orden.Items[1].ID, PosicionID: posicion.ID},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El débito de la primera línea debe haberse deshecho.
	assert.Equal(t, 10, f.cantidadEnStock(t, x1.ID, posicion.ID))
	assert.Equal(t, 1, f.cantidadEnStock(t, x2.ID, posicion.ID))
}

func TestPreparar_PosicionDeOtroClienteFalla(t *testing.T) {
	f := newFixture(t)
	cliente := f.nuevoCliente(t, "20111111111")
	otro := f.nuevoCliente(t, "20222222222")
	producto := f.nuevoProducto(t, "X1")
	posicionAjena := f.nuevaPosicion(t, otro.ID, 1)
	f.cargarStock(t, producto.ID, posicionAjena.ID, 10)

	orden, err := f.uc.CreateOrden(context.Background(), ordenDeUnaLinea("OP-0001", cliente.ID, producto.ID, 4))
	require.NoError(t, err)

	_, err = f.uc.Preparar(context.Background(), orden.ID, dto.PrepararOrdenRequest{
		Items: []dto.PrepararOrdenItemRequest{
			{ItemID: orden.Items[0].ID, PosicionID: posicionAjena.ID},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
	assert.Equal(t, 10, f.cantidadEnStock(t, producto.ID, posicionAjena.ID))
}

func TestPreparar_LineaDesconocidaFalla(t *testing.T) {
	f := newFixture(t)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)
	f.cargarStock(t, producto.ID, posicion.ID, 10)

	orden, err := f.uc.CreateOrden(context.Background(), ordenDeUnaLinea("OP-0001", cliente.ID, producto.ID, 4))
	require.NoError(t, err)

	_, err = f.uc.Preparar(context.Background(), orden.ID, dto.PrepararOrdenRequest{
		Items: []dto.PrepararOrdenItemRequest{
			{ItemID: uuid.New().String(), PosicionID: posicion.ID},
		},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestPreparar_OrdenYaPreparadaFalla(t *testing.T) {
	f := newFixture(t)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)
	f.cargarStock(t, producto.ID, posicion.ID, 10)

	orden, err := f.uc.CreateOrden(context.Background(), ordenDeUnaLinea("OP-0001", cliente.ID, producto.ID, 4))
	require.NoError(t, err)
	confirmacion := dto.PrepararOrdenRequest{
		Items: []dto.PrepararOrdenItemRequest{
			{ItemID: orden.Items[0].ID, PosicionID: posicion.ID},
		},
	}
	_, err = f.uc.Preparar(context.Background(), orden.ID, confirmacion)
	require.NoError(t, err)

	_, err = f.uc.Preparar(context.Background(), orden.ID, confirmacion)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	// El segundo intento no debe debitar de nuevo.
	assert.Equal(t, 6, f.cantidadEnStock(t, producto.ID, posicion.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad del ledger: créditos menos débitos exitosos, nunca negativo
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_SumaDeCreditosMenosDebitosExitosos(t *testing.T) {
	f := newFixture(t)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)
	f.cargarStock(t, producto.ID, posicion.ID, 7)

	debitos := []int{3, 2, 5, 1}
	esperado := 7
	for i, cantidad := range debitos {
		orden, err := f.uc.CreateOrden(context.Background(), ordenDeUnaLinea(
			fmt.Sprintf("OP-%04d", i+1), cliente.ID, producto.ID, cantidad))
		require.NoError(t, err)
		_, err = f.uc.Preparar(context.Background(), orden.ID, dto.PrepararOrdenRequest{
			Items: []dto.PrepararOrdenItemRequest{
				{ItemID: orden.Items[0].ID, PosicionID: posicion.ID},
			},
		})
		if cantidad <= esperado {
			require.NoError(t, err)
			esperado -= cantidad
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
		assert.Equal(t, esperado, f.cantidadEnStock(t, producto.ID, posicion.ID))
		assert.GreaterOrEqual(t, esperado, 0)
	}
}
