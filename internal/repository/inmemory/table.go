package inmemory

// table хранит записи одной сущности и порядок их вставки
type table[T any] struct {
	rows map[int64]*T
	ids  []int64
}

func newTable[T any]() *table[T] {
	return &table[T]{
		rows: make(map[int64]*T),
		ids:  []int64{},
	}
}

// nextID - max(id)+1, либо 1 для пустой таблицы
func (t *table[T]) nextID() int64 {
	var maxID int64
	for _, id := range t.ids {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func (t *table[T]) insert(id int64, row *T) {
	if _, ok := t.rows[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.rows[id] = row
}

func (t *table[T]) get(id int64) (*T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) all() []*T {
	res := make([]*T, 0, len(t.ids))
	for _, id := range t.ids {
		res = append(res, t.rows[id])
	}
	return res
}

func (t *table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for ind, val := range t.ids {
		if val == id {
			t.ids = append(t.ids[:ind], t.ids[ind+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) len() int {
	return len(t.ids)
}
