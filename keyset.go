package bricksculpt

import "github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"

// keySet is an insertion-ordered set of grid keys.
type keySet struct {
	keys  []bricks.Key
	index map[bricks.Key]struct{}
}

func (s *keySet) Add(keys ...bricks.Key) {
	if s.index == nil {
		s.index = make(map[bricks.Key]struct{})
	}
	for _, k := range keys {
		if _, ok := s.index[k]; ok {
			continue
		}
		s.index[k] = struct{}{}
		s.keys = append(s.keys, k)
	}
}

func (s *keySet) Has(k bricks.Key) bool {
	_, ok := s.index[k]
	return ok
}

func (s *keySet) Remove(k bricks.Key) {
	if !s.Has(k) {
		return
	}
	delete(s.index, k)
	for i, kk := range s.keys {
		if kk == k {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

func (s *keySet) Len() int {
	return len(s.keys)
}

// Keys returns a copy of the keys in insertion order.
func (s *keySet) Keys() []bricks.Key {
	return append([]bricks.Key(nil), s.keys...)
}

func (s *keySet) Reset() {
	s.keys = nil
	s.index = nil
}
