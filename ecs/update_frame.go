package ecs

// System is one step of a scheduler pipeline. Query and Singleton fields on
// the implementing struct are wired at Register time; any other fields keep
// their values between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during a scheduler run.
type UpdateFrame struct {
	DeltaTime float64
	// Tick counts completed frames, starting at zero.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, tick uint64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Commands:  commands,
		Storage:   storage,
	}
}
