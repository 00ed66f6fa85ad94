// Package cache мемоизирует расчеты окупаемости. Ключ строится по точному
// набору входных параметров, поэтому результат из кеша не отличим от
// повторного расчета.
package cache

import "context"

// Store хранилище сериализованных результатов
type Store interface {
	// Get возвращает значение и признак попадания
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set сохраняет значение
	Set(ctx context.Context, key string, value []byte) error

	// Name имя хранилища для метрик и логов
	Name() string
}
