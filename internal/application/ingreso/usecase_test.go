package ingreso_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pampazon/wms-api/internal/application/dto"
	"github.com/pampazon/wms-api/internal/application/ingreso"
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
	uc    *ingreso.UseCase
	stock *memory.StockRepo
}

func newFixture(t *testing.T, permitirExcedente bool) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store: store,
		stock: memory.NewStockRepository(store),
	}
	f.uc = ingreso.NewUseCase(
		memory.NewRemitoRepository(store),
		memory.NewClienteRepository(store),
		memory.NewProductoRepository(store),
		memory.NewTxRunner(store),
		permitirExcedente,
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

func (f *fixture) cantidadEnStock(t *testing.T, productoID, posicionID string) int {
	t.Helper()
	item, err := f.stock.Get(productoID, posicionID)
	require.NoError(t, err)
	if item == nil {
		return 0
	}
	return item.Cantidad
}

func remitoDeUnaLinea(clienteID, productoID string, declarada int) dto.CreateRemitoRequest {
	return dto.CreateRemitoRequest{
		ClienteID:         clienteID,
		CUITTransportista: "30999999990",
		Items: []dto.CreateRemitoItemRequest{
			{ProductoID: productoID, CantidadDeclarada: declarada},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de remitos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRemito_SinItemsFalla(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")

	_, err := f.uc.CreateRemito(context.Background(), dto.CreateRemitoRequest{
		ClienteID:         cliente.ID,
		CUITTransportista: "30999999990",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyItems)
}

func TestCreateRemito_ProductoInexistenteFalla(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")

	_, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, uuid.New().String(), 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateRemito_CantidadNoPositivaFalla(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")

	_, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateRemito_QuedaPendienteDeIngreso(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")

	out, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, 10))
	require.NoError(t, err)
	assert.Equal(t, string(entity.RemitoPendienteDeIngreso), out.Estado)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 10, out.Items[0].CantidadDeclarada)
	assert.Nil(t, out.Items[0].CantidadIngresada)
	assert.Nil(t, out.Items[0].PosicionID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingreso de mercadería
// ──────────────────────────────────────────────────────────────────────────────

func TestIngresarMercaderia_AcreditaStockYCierraRemito(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)

	remito, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, 10))
	require.NoError(t, err)

	out, err := f.uc.IngresarMercaderia(context.Background(), remito.ID, dto.IngresarRemitoRequest{
		Items: []dto.IngresarRemitoItemRequest{
			{ItemID: remito.Items[0].ID, CantidadIngresada: 10, PosicionID: posicion.ID},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.RemitoIngresado), out.Estado)
	require.NotNil(t, out.Items[0].CantidadIngresada)
	assert.Equal(t, 10, *out.Items[0].CantidadIngresada)
	require.NotNil(t, out.Items[0].PosicionID)
	assert.Equal(t, posicion.ID, *out.Items[0].PosicionID)
	assert.Equal(t, 10, f.cantidadEnStock(t, producto.ID, posicion.ID))
}

func TestIngresarMercaderia_CreditosSucesivosAcumulan(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)

	// Dos remitos acreditan el mismo par; el segundo crédito debe sumar
	// sobre el primero, no reemplazarlo.
	for _, cantidad := range []int{10, 5} {
		remito, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, cantidad))
		require.NoError(t, err)
		_, err = f.uc.IngresarMercaderia(context.Background(), remito.ID, dto.IngresarRemitoRequest{
			Items: []dto.IngresarRemitoItemRequest{
				{ItemID: remito.Items[0].ID, CantidadIngresada: cantidad, PosicionID: posicion.ID},
			},
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 15, f.cantidadEnStock(t, producto.ID, posicion.ID))
}

func TestIngresarMercaderia_RemitoYaIngresadoFalla(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)

	remito, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, 10))
	require.NoError(t, err)
	confirmacion := dto.IngresarRemitoRequest{
		Items: []dto.IngresarRemitoItemRequest{
			{ItemID: remito.Items[0].ID, CantidadIngresada: 10, PosicionID: posicion.ID},
		},
	}
	_, err = f.uc.IngresarMercaderia(context.Background(), remito.ID, confirmacion)
	require.NoError(t, err)

	_, err = f.uc.IngresarMercaderia(context.Background(), remito.ID, confirmacion)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	// El segundo intento no debe duplicar el crédito.
	assert.Equal(t, 10, f.cantidadEnStock(t, producto.ID, posicion.ID))
}

func TestIngresarMercaderia_PosicionDeOtroClienteNoMuta(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	otro := f.nuevoCliente(t, "20222222222")
	producto := f.nuevoProducto(t, "X1")
	posicionAjena := f.nuevaPosicion(t, otro.ID, 1)

	remito, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, 10))
	require.NoError(t, err)

	_, err = f.uc.IngresarMercaderia(context.Background(), remito.ID, dto.IngresarRemitoRequest{
		Items: []dto.IngresarRemitoItemRequest{
			{ItemID: remito.Items[0].ID, CantidadIngresada: 10, PosicionID: posicionAjena.ID},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)

	assert.Equal(t, 0, f.cantidadEnStock(t, producto.ID, posicionAjena.ID))
	releido, err := f.uc.GetByID(remito.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RemitoPendienteDeIngreso), releido.Estado)
}

func TestIngresarMercaderia_LineaDesconocidaFalla(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)

	remito, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, 10))
	require.NoError(t, err)

	_, err = f.uc.IngresarMercaderia(context.Background(), remito.ID, dto.IngresarRemitoRequest{
		Items: []dto.IngresarRemitoItemRequest{
			{ItemID: uuid.New().String(), CantidadIngresada: 10, PosicionID: posicion.ID},
		},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestIngresarMercaderia_CoberturaParcialFalla(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	x1 := f.nuevoProducto(t, "X1")
	x2 := f.nuevoProducto(t, "X2")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)

	remito, err := f.uc.CreateRemito(context.Background(), dto.CreateRemitoRequest{
		ClienteID:         cliente.ID,
		CUITTransportista: "30999999990",
		Items: []dto.CreateRemitoItemRequest{
			{ProductoID: x1.ID, CantidadDeclarada: 5},
			{ProductoID: x2.ID, CantidadDeclarada: 3},
		},
	})
	require.NoError(t, err)

	// Se confirma una sola de las dos líneas.
	_, err = f.uc.IngresarMercaderia(context.Background(), remito.ID, dto.IngresarRemitoRequest{
		Items: []dto.IngresarRemitoItemRequest{
			{ItemID: remito.Items[0].ID, CantidadIngresada: 5, PosicionID: posicion.ID},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.cantidadEnStock(t, x1.ID, posicion.ID))
}

func TestIngresarMercaderia_ExcedenteRechazadoPorDefecto(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)

	remito, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, 10))
	require.NoError(t, err)

	_, err = f.uc.IngresarMercaderia(context.Background(), remito.ID, dto.IngresarRemitoRequest{
		Items: []dto.IngresarRemitoItemRequest{
			{ItemID: remito.Items[0].ID, CantidadIngresada: 12, PosicionID: posicion.ID},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.cantidadEnStock(t, producto.ID, posicion.ID))
}

func TestIngresarMercaderia_ExcedentePermitidoPorConfiguracion(t *testing.T) {
	f := newFixture(t, true)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)

	remito, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, 10))
	require.NoError(t, err)

	out, err := f.uc.IngresarMercaderia(context.Background(), remito.ID, dto.IngresarRemitoRequest{
		Items: []dto.IngresarRemitoItemRequest{
			{ItemID: remito.Items[0].ID, CantidadIngresada: 12, PosicionID: posicion.ID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.RemitoIngresado), out.Estado)
	assert.Equal(t, 12, f.cantidadEnStock(t, producto.ID, posicion.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazo
// ──────────────────────────────────────────────────────────────────────────────

func TestRechazar_DesdePendienteNoTocaStock(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)

	remito, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, 10))
	require.NoError(t, err)

	out, err := f.uc.Rechazar(context.Background(), remito.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RemitoRechazado), out.Estado)
	assert.Equal(t, 0, f.cantidadEnStock(t, producto.ID, posicion.ID))
}

func TestRechazar_RemitoIngresadoFalla(t *testing.T) {
	f := newFixture(t, false)
	cliente := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, cliente.ID, 1)

	remito, err := f.uc.CreateRemito(context.Background(), remitoDeUnaLinea(cliente.ID, producto.ID, 10))
	require.NoError(t, err)
	_, err = f.uc.IngresarMercaderia(context.Background(), remito.ID, dto.IngresarRemitoRequest{
		Items: []dto.IngresarRemitoItemRequest{
			{ItemID: remito.Items[0].ID, CantidadIngresada: 10, PosicionID: posicion.ID},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.Rechazar(context.Background(), remito.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
