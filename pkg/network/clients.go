package network

import (
	"fmt"
	"math/rand"
	"sync"
)

const (
	// ConnectionIDMaxRetries represents the maximum number of retries when generating a unique ID
	ConnectionIDMaxRetries = 1024
)

// ConnectionManager tracks the open websocket connections
type ConnectionManager struct {
	connections     map[uint32]*Connection
	connectionsLock sync.RWMutex
}

// NewConnectionManager creates a new ConnectionManager
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[uint32]*Connection),
	}
}

// Add registers a connection and returns its ID
func (cm *ConnectionManager) Add(connection *Connection) (uint32, error) {
	cm.connectionsLock.Lock()
	defer cm.connectionsLock.Unlock()

	id, err := cm.generateUniqueID(ConnectionIDMaxRetries)
	if err != nil {
		return 0, fmt.Errorf("failed to generate a unique ID: %v", err)
	}
	cm.connections[id] = connection
	return id, nil
}

// Remove unregisters a connection
func (cm *ConnectionManager) Remove(id uint32) {
	cm.connectionsLock.Lock()
	defer cm.connectionsLock.Unlock()
	delete(cm.connections, id)
}

func (cm *ConnectionManager) Exists(id uint32) bool {
	cm.connectionsLock.RLock()
	defer cm.connectionsLock.RUnlock()
	_, ok := cm.connections[id]
	return ok
}

// Count returns the number of open connections
func (cm *ConnectionManager) Count() int {
	cm.connectionsLock.RLock()
	defer cm.connectionsLock.RUnlock()
	return len(cm.connections)
}

// generateUniqueID generates a unique connection ID with a maximum number of retries
// it reads from the connections, so it needs to be locked before calling
func (cm *ConnectionManager) generateUniqueID(maxRetries int) (uint32, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		id := rand.Uint32()
		if id == 0 {
			continue
		}
		if _, ok := cm.connections[id]; !ok {
			return id, nil
		}
	}

	return 0, fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}
