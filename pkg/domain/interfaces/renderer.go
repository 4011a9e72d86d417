package interfaces

// Renderer presents one frame of playback. Frame is called after each visual
// mutation; Close is called once when playback ends.
type Renderer interface {
	Frame()
	Close()
}
