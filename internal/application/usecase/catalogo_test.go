package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pampazon/wms-api/internal/application/dto"
	"github.com/pampazon/wms-api/internal/application/usecase"
	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store      *memory.Store
	clientes   *usecase.ClienteUseCase
	productos  *usecase.ProductoUseCase
	posiciones *usecase.PosicionUseCase
	stock      *usecase.StockUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	clienteRepo := memory.NewClienteRepository(store)
	productoRepo := memory.NewProductoRepository(store)
	posicionRepo := memory.NewPosicionRepository(store)
	stockRepo := memory.NewStockRepository(store)
	return &fixture{
		store:      store,
		clientes:   usecase.NewClienteUseCase(clienteRepo, tx),
		productos:  usecase.NewProductoUseCase(productoRepo, tx),
		posiciones: usecase.NewPosicionUseCase(posicionRepo, clienteRepo, tx),
		stock:      usecase.NewStockUseCase(stockRepo, productoRepo, posicionRepo, tx),
	}
}

func (f *fixture) nuevoCliente(t *testing.T, cuit string) *dto.ClienteResponse {
	t.Helper()
	c, err := f.clientes.Create(dto.CreateClienteRequest{
		CUIT:        cuit,
		RazonSocial: "Cliente " + cuit,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) nuevoProducto(t *testing.T, codigo string) *dto.ProductoResponse {
	t.Helper()
	p, err := f.productos.Create(dto.CreateProductoRequest{
		Codigo:        codigo,
		Descripcion:   "Producto " + codigo,
		AltoCm:        decimal.NewFromInt(10),
		AnchoCm:       decimal.NewFromInt(10),
		ProfundidadCm: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) nuevaPosicion(t *testing.T, clienteID string, nivel int) *dto.PosicionResponse {
	t.Helper()
	p, err := f.posiciones.Create(dto.CreatePosicionRequest{
		Pasillo:    "A",
		Seccion:    1,
		Estanteria: 1,
		Nivel:      nivel,
		ClienteID:  clienteID,
	})
	require.NoError(t, err)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestClienteCreate_CUITDuplicadoFalla(t *testing.T) {
	f := newFixture(t)
	f.nuevoCliente(t, "20111111111")

	_, err := f.clientes.Create(dto.CreateClienteRequest{
		CUIT:        "20111111111",
		RazonSocial: "Otro",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClienteUpdate_NoModificaCUIT(t *testing.T) {
	f := newFixture(t)
	c := f.nuevoCliente(t, "20111111111")

	out, err := f.clientes.Update(c.ID, dto.UpdateClienteRequest{RazonSocial: "Nueva Razón"})
	require.NoError(t, err)

	assert.Equal(t, "Nueva Razón", out.RazonSocial)
	assert.Equal(t, "20111111111", out.CUIT)
}

func TestClienteDelete_BloqueadoPorPosicionAlquilada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.nuevoCliente(t, "20111111111")
	p := f.nuevaPosicion(t, c.ID, 1)

	err := f.clientes.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrBlockedByReferences)

	// Liberada la posición, la baja procede.
	require.NoError(t, f.posiciones.Delete(ctx, p.ID))
	require.NoError(t, f.clientes.Delete(ctx, c.ID))

	releido, err := f.clientes.GetByID(c.ID)
	require.NoError(t, err)
	assert.Nil(t, releido)
}

func TestClienteDelete_BloqueadoPorRemitoPendiente(t *testing.T) {
	f := newFixture(t)
	c := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	require.NoError(t, memory.NewRemitoRepository(f.store).Create(&entity.Remito{
		ID:                uuid.New().String(),
		ClienteID:         c.ID,
		CUITTransportista: "30999999997",
		Fecha:             time.Now(),
		Estado:            entity.RemitoPendienteDeIngreso,
		Items: []entity.RemitoItem{
			{ID: uuid.New().String(), ProductoID: producto.ID, CantidadDeclarada: 5},
		},
	}))

	err := f.clientes.Delete(context.Background(), c.ID)
	assert.ErrorIs(t, err, domain.ErrBlockedByReferences)
}

func TestClienteDelete_BloqueadoPorOrdenSinDespachar(t *testing.T) {
	f := newFixture(t)
	c := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	require.NoError(t, memory.NewOrdenRepository(f.store).Create(&entity.Orden{
		ID:                    uuid.New().String(),
		Numero:                "OP-0001",
		ClienteID:             c.ID,
		NombreDestinatario:    "Destinatario",
		DireccionDestinatario: "Calle Falsa 123",
		Fecha:                 time.Now(),
		Estado:                entity.OrdenPendiente,
		Items: []entity.OrdenItem{
			{ID: uuid.New().String(), ProductoID: producto.ID, CantidadSolicitada: 2},
		},
	}))

	err := f.clientes.Delete(context.Background(), c.ID)
	assert.ErrorIs(t, err, domain.ErrBlockedByReferences)
}

func TestClienteDelete_InexistenteFalla(t *testing.T) {
	f := newFixture(t)

	err := f.clientes.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductoCreate_DimensionNoPositivaFalla(t *testing.T) {
	f := newFixture(t)

	_, err := f.productos.Create(dto.CreateProductoRequest{
		Codigo:        "X1",
		Descripcion:   "Producto X1",
		AltoCm:        decimal.Zero,
		AnchoCm:       decimal.NewFromInt(10),
		ProfundidadCm: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductoCreate_CodigoDuplicadoFalla(t *testing.T) {
	f := newFixture(t)
	f.nuevoProducto(t, "X1")

	_, err := f.productos.Create(dto.CreateProductoRequest{
		Codigo:        "X1",
		Descripcion:   "Otro",
		AltoCm:        decimal.NewFromInt(1),
		AnchoCm:       decimal.NewFromInt(1),
		ProfundidadCm: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductoDelete_BloqueadoPorStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, c.ID, 1)
	_, err := f.stock.Create(dto.CreateStockRequest{
		ProductoID: producto.ID,
		PosicionID: posicion.ID,
		Cantidad:   3,
	})
	require.NoError(t, err)

	err = f.productos.Delete(ctx, producto.ID)
	assert.ErrorIs(t, err, domain.ErrBlockedByReferences)
}

func TestProductoDelete_BloqueadoPorLineaDeRemito(t *testing.T) {
	f := newFixture(t)
	c := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	require.NoError(t, memory.NewRemitoRepository(f.store).Create(&entity.Remito{
		ID:                uuid.New().String(),
		ClienteID:         c.ID,
		CUITTransportista: "30999999997",
		Fecha:             time.Now(),
		Estado:            entity.RemitoRechazado,
		Items: []entity.RemitoItem{
			{ID: uuid.New().String(), ProductoID: producto.ID, CantidadDeclarada: 5},
		},
	}))

	err := f.productos.Delete(context.Background(), producto.ID)
	assert.ErrorIs(t, err, domain.ErrBlockedByReferences)
}

func TestProductoDelete_SinReferenciasProcede(t *testing.T) {
	f := newFixture(t)
	producto := f.nuevoProducto(t, "X1")

	require.NoError(t, f.productos.Delete(context.Background(), producto.ID))

	releido, err := f.productos.GetByID(producto.ID)
	require.NoError(t, err)
	assert.Nil(t, releido)
}

// ──────────────────────────────────────────────────────────────────────────────
// Posiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestPosicionCreate_UbicacionCompuesta(t *testing.T) {
	f := newFixture(t)
	c := f.nuevoCliente(t, "20111111111")

	p, err := f.posiciones.Create(dto.CreatePosicionRequest{
		Pasillo:    "B",
		Seccion:    2,
		Estanteria: 3,
		Nivel:      4,
		ClienteID:  c.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "B.2.3.4", p.Ubicacion)
}

func TestPosicionCreate_TuplaDuplicadaFalla(t *testing.T) {
	f := newFixture(t)
	c := f.nuevoCliente(t, "20111111111")
	otro := f.nuevoCliente(t, "20222222222")
	original := f.nuevaPosicion(t, c.ID, 1)

	_, err := f.posiciones.Create(dto.CreatePosicionRequest{
		Pasillo:    "A",
		Seccion:    1,
		Estanteria: 1,
		Nivel:      1,
		ClienteID:  otro.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// La posición original no se ve afectada.
	releida, err := f.posiciones.GetByID(original.ID)
	require.NoError(t, err)
	require.NotNil(t, releida)
	assert.Equal(t, c.ID, releida.ClienteID)
}

func TestPosicionCreate_PasilloInvalidoFalla(t *testing.T) {
	f := newFixture(t)
	c := f.nuevoCliente(t, "20111111111")

	for _, pasillo := range []string{"", "a", "AB", "1"} {
		_, err := f.posiciones.Create(dto.CreatePosicionRequest{
			Pasillo:    pasillo,
			Seccion:    1,
			Estanteria: 1,
			Nivel:      1,
			ClienteID:  c.ID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "pasillo %q", pasillo)
	}
}

func TestPosicionDelete_BloqueadaPorStockPositivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, c.ID, 1)
	registro, err := f.stock.Create(dto.CreateStockRequest{
		ProductoID: producto.ID,
		PosicionID: posicion.ID,
		Cantidad:   3,
	})
	require.NoError(t, err)

	err = f.posiciones.Delete(ctx, posicion.ID)
	assert.ErrorIs(t, err, domain.ErrBlockedByReferences)

	// En cero la posición queda liberable.
	_, err = f.stock.Update(registro.ID, dto.UpdateStockRequest{Cantidad: 0})
	require.NoError(t, err)
	require.NoError(t, f.posiciones.Delete(ctx, posicion.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock administrativo
// ──────────────────────────────────────────────────────────────────────────────

func TestStockCreate_ParDuplicadoFalla(t *testing.T) {
	f := newFixture(t)
	c := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, c.ID, 1)
	_, err := f.stock.Create(dto.CreateStockRequest{
		ProductoID: producto.ID,
		PosicionID: posicion.ID,
		Cantidad:   3,
	})
	require.NoError(t, err)

	_, err = f.stock.Create(dto.CreateStockRequest{
		ProductoID: producto.ID,
		PosicionID: posicion.ID,
		Cantidad:   1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStockCreate_ProyectaCodigoYUbicacion(t *testing.T) {
	f := newFixture(t)
	c := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, c.ID, 2)

	out, err := f.stock.Create(dto.CreateStockRequest{
		ProductoID: producto.ID,
		PosicionID: posicion.ID,
		Cantidad:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, "X1", out.CodigoProducto)
	assert.Equal(t, "A.1.1.2", out.Ubicacion)
	assert.Equal(t, 5, out.Cantidad)
}

func TestStockDelete_SoloConCantidadEnCero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.nuevoCliente(t, "20111111111")
	producto := f.nuevoProducto(t, "X1")
	posicion := f.nuevaPosicion(t, c.ID, 1)
	registro, err := f.stock.Create(dto.CreateStockRequest{
		ProductoID: producto.ID,
		PosicionID: posicion.ID,
		Cantidad:   2,
	})
	require.NoError(t, err)

	err = f.stock.Delete(ctx, registro.ID)
	assert.ErrorIs(t, err, domain.ErrBlockedByReferences)

	_, err = f.stock.Update(registro.ID, dto.UpdateStockRequest{Cantidad: 0})
	require.NoError(t, err)
	require.NoError(t, f.stock.Delete(ctx, registro.ID))

	releido, err := f.stock.GetByID(registro.ID)
	require.NoError(t, err)
	assert.Nil(t, releido)
}
