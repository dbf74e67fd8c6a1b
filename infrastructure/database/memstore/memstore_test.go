package memstore

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_PutEGet(t *testing.T) {
	arena := NewArena()

	arena.Put("mb_aaa111", "registro")

	got, ok := arena.Get("mb_aaa111")
	require.True(t, ok)
	assert.Equal(t, "registro", got)

	_, ok = arena.Get("mb_nada00")
	assert.False(t, ok)
}

func TestArena_PutSubstituiValorAnterior(t *testing.T) {
	arena := NewArena()

	arena.Put("mb_bbb222", 1)
	arena.Put("mb_bbb222", 2)

	got, ok := arena.Get("mb_bbb222")
	require.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, arena.Len())
}

func TestArena_Delete(t *testing.T) {
	arena := NewArena()

	arena.Put("mb_ccc333", "registro")
	arena.Delete("mb_ccc333")

	_, ok := arena.Get("mb_ccc333")
	assert.False(t, ok)
	assert.Equal(t, 0, arena.Len())

	// Remover chave inexistente não deve causar pânico
	arena.Delete("mb_nada00")
}

func TestArena_Keys(t *testing.T) {
	arena := NewArena()

	arena.Put("mb_ddd444", "a")
	arena.Put("mb_eee555", "b")

	keys := arena.Keys()
	assert.ElementsMatch(t, []string{"mb_ddd444", "mb_eee555"}, keys)
}

func TestArena_Update(t *testing.T) {
	t.Run("Publica o valor devolvido pela função", func(t *testing.T) {
		arena := NewArena()
		arena.Put("mb_fff666", 10)

		err := arena.Update("mb_fff666", func(current any, ok bool) (any, error) {
			require.True(t, ok)
			return current.(int) + 1, nil
		})

		require.NoError(t, err)
		got, _ := arena.Get("mb_fff666")
		assert.Equal(t, 11, got)
	})

	t.Run("Chave ausente chega com ok falso", func(t *testing.T) {
		arena := NewArena()

		err := arena.Update("mb_nada00", func(current any, ok bool) (any, error) {
			assert.False(t, ok)
			assert.Nil(t, current)
			return "novo", nil
		})

		require.NoError(t, err)
		got, ok := arena.Get("mb_nada00")
		require.True(t, ok)
		assert.Equal(t, "novo", got)
	})

	t.Run("Erro da função descarta a atualização", func(t *testing.T) {
		arena := NewArena()
		arena.Put("mb_ggg777", "antes")

		boom := errors.New("registro inconsistente")
		err := arena.Update("mb_ggg777", func(any, bool) (any, error) {
			return nil, boom
		})

		assert.ErrorIs(t, err, boom)
		got, _ := arena.Get("mb_ggg777")
		assert.Equal(t, "antes", got)
	})
}

// Atualizações concorrentes da mesma chave serializam pelo lock da chave:
// nenhum incremento se perde mesmo com leitores simultâneos.
func TestArena_UpdateConcorrenteNaMesmaChave(t *testing.T) {
	arena := NewArena()
	arena.Put("mb_disputa", 0)

	const writers = 40

	var wg sync.WaitGroup
	wg.Add(writers * 2)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			err := arena.Update("mb_disputa", func(current any, ok bool) (any, error) {
				require.True(t, ok)
				return current.(int) + 1, nil
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			arena.Get("mb_disputa")
		}()
	}
	wg.Wait()

	got, ok := arena.Get("mb_disputa")
	require.True(t, ok)
	assert.Equal(t, writers, got)
}

func TestArena_AcessoConcorrente(t *testing.T) {
	arena := NewArena()

	const workers = 50

	var wg sync.WaitGroup
	wg.Add(workers * 2)
	for i := 0; i < workers; i++ {
		key := fmt.Sprintf("mb_%06d", i)
		go func() {
			defer wg.Done()
			arena.Put(key, i)
		}()
		go func() {
			defer wg.Done()
			arena.Get(key)
			arena.Len()
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, arena.Len())
}
