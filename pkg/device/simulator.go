package device

import (
	"context"
	"errors"
)

// Simulator is a ConfigSource preloaded with sample router and switch
// configurations, used for demos and tests without real devices.
type Simulator struct {
	configs map[string]string
}

// NewSimulator creates a simulator with the built-in sample fleet
// (Router1 and Switch1).
func NewSimulator() *Simulator {
	return &Simulator{configs: map[string]string{
		"Router1": sampleRouterConfig,
		"Switch1": sampleSwitchConfig,
	}}
}

// Add registers or replaces a simulated device configuration.
func (s *Simulator) Add(deviceID, config string) {
	s.configs[deviceID] = config
}

// Devices lists the simulated device identifiers in a fixed demo order:
// built-in devices first, then any added ones.
func (s *Simulator) Devices() []string {
	ids := make([]string, 0, len(s.configs))
	for _, id := range []string{"Router1", "Switch1"} {
		if _, ok := s.configs[id]; ok {
			ids = append(ids, id)
		}
	}
	for id := range s.configs {
		if id != "Router1" && id != "Switch1" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Fetch returns the simulated configuration for the device.
func (s *Simulator) Fetch(ctx context.Context, deviceID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &RetrievalError{Device: deviceID, Err: err}
	}
	config, ok := s.configs[deviceID]
	if !ok {
		return "", &RetrievalError{Device: deviceID, Err: errors.New("unknown simulated device")}
	}
	return config, nil
}

const sampleRouterConfig = `version 15.1
service timestamps debug datetime msec
service timestamps log datetime msec
no service password-encryption
!
hostname Router1
!
boot-start-marker
boot-end-marker
!
enable secret 5 $1$mERr$hx5rVt7rPNoS4wqbXKX7m0
!
no aaa new-model
ethernet lmi ce
!
ip source-route
no ip icmp rate-limit unreachable
ip forward-protocol nd
!
no ip http server
ip http access-class 23
ip http authentication local
ip http secure-server
ip http timeout-policy idle 60 life 86400 requests 10000
!
interface FastEthernet0/0
 ip address 192.168.1.1 255.255.255.0
 duplex auto
 speed auto
!
interface FastEthernet0/1
 ip address 10.0.0.1 255.255.255.252
 duplex auto
 speed auto
!
router ospf 1
 log-adjacency-changes
 network 192.168.1.0 0.0.0.255 area 0
 network 10.0.0.0 0.0.0.3 area 0
!
access-list 1 permit 192.168.1.0 0.0.0.255
access-list 23 permit 192.168.1.100
!
line con 0
 exec-timeout 0 0
 privilege level 15
 logging synchronous
line aux 0
 exec-timeout 0 0
 privilege level 15
 logging synchronous
line vty 0 4
 access-class 23 in
 privilege level 15
 logging synchronous
 transport input telnet ssh
!
end
`

const sampleSwitchConfig = `version 12.2
no service pad
service timestamps debug datetime msec
service timestamps log datetime msec
no service password-encryption
!
hostname Switch1
!
boot-start-marker
boot-end-marker
!
enable secret 5 $1$mERr$hx5rVt7rPNoS4wqbXKX7m0
!
username admin privilege 15 secret 5 $1$mERr$hx5rVt7rPNoS4wqbXKX7m0
aaa new-model
!
ip subnet-zero
!
spanning-tree mode pvst
spanning-tree extend system-id
!
vlan internal allocation policy ascending
!
interface FastEthernet0/1
 switchport mode access
 switchport access vlan 10
!
interface FastEthernet0/2
 switchport mode access
 switchport access vlan 20
!
interface FastEthernet0/24
 switchport mode trunk
 switchport trunk allowed vlan 10,20,30
!
interface Vlan1
 ip address 192.168.1.10 255.255.255.0
!
interface Vlan10
 description USERS
 ip address 192.168.10.1 255.255.255.0
!
interface Vlan20
 description SERVERS
 ip address 192.168.20.1 255.255.255.0
!
ip default-gateway 192.168.1.1
ip http server
ip http secure-server
!
line con 0
line vty 0 4
 privilege level 15
 login local
 transport input ssh
line vty 5 15
 privilege level 15
 login local
 transport input ssh
!
end
`
