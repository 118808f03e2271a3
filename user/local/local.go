package local

import "sync"

// User is an in-memory alert channel for tests.
type User struct {
	mutex    *sync.Mutex
	messages []string
}

func NewUser() *User {
	return &User{
		mutex:    new(sync.Mutex),
		messages: make([]string, 0),
	}
}

func (u *User) Send(message string) error {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	u.messages = append(u.messages, message)
	return nil
}

// Messages returns the alerts sent so far.
func (u *User) Messages() []string {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	return append([]string{}, u.messages...)
}
