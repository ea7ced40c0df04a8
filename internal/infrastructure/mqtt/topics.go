package mqtt

import "fmt"

// Topic prefixes for the Homeplan MQTT hierarchy.
//
// All topics use the flat scheme: homeplan/{category}/{device_id}/{switch}
const (
	// TopicPrefix is the base for all Homeplan topics.
	TopicPrefix = "homeplan"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "homeplan/system"
)

// Topics provides builders for Homeplan MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.ChannelState("649d9d4d", 2)
//	// Returns: "homeplan/state/649d9d4d/2"
type Topics struct{}

// ChannelState returns the topic for state updates of one channel.
// Published retained so late subscribers see the last known state.
//
// Example: homeplan/state/649d9d4d/2
func (Topics) ChannelState(deviceID string, switchNumber int) string {
	return fmt.Sprintf("%s/state/%s/%d", TopicPrefix, deviceID, switchNumber)
}

// ChannelCommand returns the topic on which external automations send
// commands to one channel. The payload is {"state": "<symbolic>"}.
//
// Example: homeplan/command/649d9d4d/2
func (Topics) ChannelCommand(deviceID string, switchNumber int) string {
	return fmt.Sprintf("%s/command/%s/%d", TopicPrefix, deviceID, switchNumber)
}

// SystemStatus returns the Core online/offline status topic. Also used
// as the LWT topic so subscribers see crashes.
//
// Example: homeplan/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// SystemDiscovery returns the topic announcing completed discovery runs.
//
// Example: homeplan/system/discovery
func (Topics) SystemDiscovery() string {
	return fmt.Sprintf("%s/discovery", TopicPrefixSystem)
}

// AllChannelStates returns a pattern matching every channel state topic.
//
// Pattern: homeplan/state/+/+
func (Topics) AllChannelStates() string {
	return fmt.Sprintf("%s/state/+/+", TopicPrefix)
}

// AllChannelCommands returns a pattern matching every channel command topic.
//
// Pattern: homeplan/command/+/+
func (Topics) AllChannelCommands() string {
	return fmt.Sprintf("%s/command/+/+", TopicPrefix)
}

// AllTopics returns a pattern matching all Homeplan topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: homeplan/#
func (Topics) AllTopics() string {
	return "homeplan/#"
}
