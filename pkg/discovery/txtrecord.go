package discovery

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeTXT creates the TXT record for info.
func EncodeTXT(info Info) TXTRecordMap {
	path := info.Path
	if path == "" {
		path = "/"
	}
	txt := TXTRecordMap{
		TXTKeyVersion: info.Version,
		TXTKeyPath:    path,
	}
	if info.Timers > 0 {
		txt[TXTKeyTimers] = strconv.Itoa(info.Timers)
	}
	return txt
}

// DecodeTXT parses a TXT record into the announced fields.
func DecodeTXT(txt TXTRecordMap) (Info, error) {
	var info Info
	var ok bool

	if info.Version, ok = txt[TXTKeyVersion]; !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}
	if info.Path, ok = txt[TXTKeyPath]; !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyPath)
	}
	if n, ok := txt[TXTKeyTimers]; ok {
		v, err := strconv.Atoi(n)
		if err != nil || v < 0 {
			return Info{}, fmt.Errorf("invalid %s value %q", TXTKeyTimers, n)
		}
		info.Timers = v
	}
	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		key, value, found := strings.Cut(s, "=")
		if key == "" {
			continue
		}
		if !found {
			// Key without value (boolean flag)
			value = ""
		}
		txt[key] = value
	}
	return txt
}

// InstanceName returns name, or "multiwatch on <host>" when name is empty,
// truncated to MaxInstanceNameLen.
func InstanceName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = "localhost"
		}
		host, _, _ = strings.Cut(host, ".")
		name = "multiwatch on " + host
	}
	if len(name) > MaxInstanceNameLen {
		name = name[:MaxInstanceNameLen]
	}
	return name
}

// ValidateInfo checks that info can be announced.
func ValidateInfo(info Info) error {
	if info.Instance == "" || len(info.Instance) > MaxInstanceNameLen {
		return fmt.Errorf("%w: %q", ErrInvalidInstanceName, info.Instance)
	}
	if info.Port <= 0 || info.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, info.Port)
	}
	return nil
}
