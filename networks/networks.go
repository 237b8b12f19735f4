package networks

import (
	"sync"
)

// DefaultNetwork is used when neither a flag, the environment nor the config
// file names one.
const DefaultNetwork = "sepolia"

var (
	cachedNetwork Network
	mu            sync.Mutex
)

func CurrentNetwork() Network {
	mu.Lock()
	defer mu.Unlock()
	if cachedNetwork == nil {
		cachedNetwork = Sepolia
	}
	return cachedNetwork
}

// SetNetwork switches the process wide network. The current network is left
// untouched when name is unknown.
func SetNetwork(name string) (Network, error) {
	n, err := GetNetwork(name)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()
	cachedNetwork = n
	return n, nil
}
