package memcache_fx

import (
	"go.uber.org/fx"

	"moments/internal/models/room_models"
	mem "moments/pkg/memcache"
)

var Module = fx.Provide(provideRoomStore)

func provideRoomStore() mem.Store[room_models.Room] {
	return mem.NewTTLStore[room_models.Room]()
}
