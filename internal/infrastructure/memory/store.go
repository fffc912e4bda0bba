// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, para tests de casos de uso sin base de datos. El TxRunner toma
// una snapshot del estado antes del callback y lo restaura si falla, de
// modo que la semántica todo-o-nada de los protocolos sea observable en
// los tests.
package memory

import (
	"sync"

	"github.com/pampazon/wms-api/internal/domain/entity"
)

// Store estado compartido de todos los repos en memoria.
type Store struct {
	mu sync.Mutex

	clientes   map[string]*entity.Cliente
	productos  map[string]*entity.Producto
	posiciones map[string]*entity.Posicion
	stock      map[string]*entity.StockItem
	remitos    map[string]*entity.Remito
	ordenes    map[string]*entity.Orden
	despachos  map[string]*entity.Despacho
	users      map[string]*entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		clientes:   make(map[string]*entity.Cliente),
		productos:  make(map[string]*entity.Producto),
		posiciones: make(map[string]*entity.Posicion),
		stock:      make(map[string]*entity.StockItem),
		remitos:    make(map[string]*entity.Remito),
		ordenes:    make(map[string]*entity.Orden),
		despachos:  make(map[string]*entity.Despacho),
		users:      make(map[string]*entity.User),
	}
}

type snapshot struct {
	clientes   map[string]*entity.Cliente
	productos  map[string]*entity.Producto
	posiciones map[string]*entity.Posicion
	stock      map[string]*entity.StockItem
	remitos    map[string]*entity.Remito
	ordenes    map[string]*entity.Orden
	despachos  map[string]*entity.Despacho
	users      map[string]*entity.User
}

// snapshot copia profunda del estado. Llamar con s.mu tomado.
func (s *Store) snapshot() *snapshot {
	sn := &snapshot{
		clientes:   make(map[string]*entity.Cliente, len(s.clientes)),
		productos:  make(map[string]*entity.Producto, len(s.productos)),
		posiciones: make(map[string]*entity.Posicion, len(s.posiciones)),
		stock:      make(map[string]*entity.StockItem, len(s.stock)),
		remitos:    make(map[string]*entity.Remito, len(s.remitos)),
		ordenes:    make(map[string]*entity.Orden, len(s.ordenes)),
		despachos:  make(map[string]*entity.Despacho, len(s.despachos)),
		users:      make(map[string]*entity.User, len(s.users)),
	}
	for k, v := range s.clientes {
		sn.clientes[k] = copyCliente(v)
	}
	for k, v := range s.productos {
		sn.productos[k] = copyProducto(v)
	}
	for k, v := range s.posiciones {
		sn.posiciones[k] = copyPosicion(v)
	}
	for k, v := range s.stock {
		sn.stock[k] = copyStockItem(v)
	}
	for k, v := range s.remitos {
		sn.remitos[k] = copyRemito(v)
	}
	for k, v := range s.ordenes {
		sn.ordenes[k] = copyOrden(v)
	}
	for k, v := range s.despachos {
		sn.despachos[k] = copyDespacho(v)
	}
	for k, v := range s.users {
		sn.users[k] = copyUser(v)
	}
	return sn
}

// restore reemplaza el estado con la snapshot. Llamar con s.mu tomado.
func (s *Store) restore(sn *snapshot) {
	s.clientes = sn.clientes
	s.productos = sn.productos
	s.posiciones = sn.posiciones
	s.stock = sn.stock
	s.remitos = sn.remitos
	s.ordenes = sn.ordenes
	s.despachos = sn.despachos
	s.users = sn.users
}

func copyCliente(c *entity.Cliente) *entity.Cliente {
	cp := *c
	return &cp
}

func copyProducto(p *entity.Producto) *entity.Producto {
	cp := *p
	return &cp
}

func copyPosicion(p *entity.Posicion) *entity.Posicion {
	cp := *p
	return &cp
}

func copyStockItem(s *entity.StockItem) *entity.StockItem {
	cp := *s
	return &cp
}

func copyRemito(r *entity.Remito) *entity.Remito {
	cp := *r
	cp.Items = make([]entity.RemitoItem, len(r.Items))
	for i, it := range r.Items {
		cp.Items[i] = it
		if it.CantidadIngresada != nil {
			v := *it.CantidadIngresada
			cp.Items[i].CantidadIngresada = &v
		}
		if it.PosicionID != nil {
			v := *it.PosicionID
			cp.Items[i].PosicionID = &v
		}
	}
	return &cp
}

func copyOrden(o *entity.Orden) *entity.Orden {
	cp := *o
	if o.DespachoID != nil {
		v := *o.DespachoID
		cp.DespachoID = &v
	}
	cp.Items = make([]entity.OrdenItem, len(o.Items))
	for i, it := range o.Items {
		cp.Items[i] = it
		if it.PosicionID != nil {
			v := *it.PosicionID
			cp.Items[i].PosicionID = &v
		}
	}
	return &cp
}

func copyDespacho(d *entity.Despacho) *entity.Despacho {
	cp := *d
	return &cp
}

func copyUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}
