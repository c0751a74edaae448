package rules

// Snake is the ordered body of the snake, head first.
type Snake struct {
	Body []Point
}

// Head returns the first point in the body
func (s *Snake) Head() Point {
	return s.Body[0]
}

// Tail returns the last point in the body
func (s *Snake) Tail() Point {
	return s.Body[len(s.Body)-1]
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Move the snake 1 space in the given direction. Move does not remove the end
// point of the snake, that is done after food has been resolved.
func (s *Snake) Move(direction Point) Point {
	head := s.Head().Add(direction)
	s.Body = append([]Point{head}, s.Body...)
	return head
}

// RemoveTail drops the last segment.
func (s *Snake) RemoveTail() {
	if len(s.Body) == 0 {
		return
	}
	s.Body = s.Body[:len(s.Body)-1]
}

// clone returns a copy that does not share the body array.
func (s *Snake) clone() []Point {
	body := make([]Point, len(s.Body))
	copy(body, s.Body)
	return body
}
