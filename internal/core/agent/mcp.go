package agent

import (
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/skilldock/skilldock/internal/core/model"
)

// GenerateMCPConfig renders the agent's MCP server manifest. ok is false
// when the agent has no MCP support; that is never an error.
func (b *BaseAdapter) GenerateMCPConfig(servers []model.MCPServer) (string, bool) {
	if b.mcpStyle == MCPNone {
		return "", false
	}

	entries := make(map[string]any, len(servers))
	for _, s := range servers {
		entries[s.Name] = mcpEntry(s)
	}

	doc := map[string]any{b.mcpKey: entries}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", false
	}
	return string(data) + "\n", true
}

// mcpEntry builds the manifest value for one server. Command servers emit
// {command, args?, env?}; remote servers emit {type, url, headers?}.
func mcpEntry(s model.MCPServer) map[string]any {
	if s.Command != "" {
		m := map[string]any{"command": s.Command}
		if len(s.Args) > 0 {
			m["args"] = s.Args
		}
		if len(s.Env) > 0 {
			m["env"] = s.Env
		}
		return m
	}

	transport := s.Transport
	if transport == "" {
		transport = "http"
	}
	m := map[string]any{"type": transport, "url": s.URL}
	if len(s.Headers) > 0 {
		m["headers"] = s.Headers
	}
	return m
}

// writeMCP writes or merges the MCP manifest for this adapter. A fresh
// file gets the rendered manifest; an existing file is patched entry by
// entry so user content and comments survive.
func (b *BaseAdapter) writeMCP(res *model.SyncResult, projectDir string, global bool, servers []model.MCPServer) {
	path := b.MCPConfigPath(projectDir, global)

	existing, err := readConfigFile(path)
	if err != nil {
		res.RecordError(fmt.Errorf("reading %s: %w", path, err))
		return
	}

	if existing == "" {
		manifest, ok := b.GenerateMCPConfig(servers)
		if !ok {
			return
		}
		b.writeFile(res, path, manifest)
		return
	}

	var merged string
	switch b.mcpStyle {
	case MCPSettingsKey:
		merged, err = mergeMCPSettings(existing, b.mcpKey, servers)
	default:
		merged, err = mergeMCPManifest(existing, b.mcpKey, servers, b.mcpJSONC)
	}
	if err != nil {
		res.RecordError(fmt.Errorf("merging %s: %w", path, err))
		return
	}

	b.writeFile(res, path, merged)
}

// mergeMCPManifest patches server entries into an existing JSON/JSONC
// manifest, preserving comments and formatting where the format allows.
func mergeMCPManifest(content, key string, servers []model.MCPServer, keepJSONC bool) (string, error) {
	root, err := hujson.Parse([]byte(content))
	if err != nil {
		return "", fmt.Errorf("parsing existing config: %w", err)
	}

	topPtr := "/" + jsonPointerEscape(key)
	if root.Find(topPtr) == nil {
		patch := fmt.Sprintf(`[{"op":"add","path":%q,"value":{}}]`, topPtr)
		if err := root.Patch([]byte(patch)); err != nil {
			return "", fmt.Errorf("creating %q key: %w", key, err)
		}
	}

	for _, s := range servers {
		value, err := json.Marshal(mcpEntry(s))
		if err != nil {
			return "", err
		}
		entryPtr := topPtr + "/" + jsonPointerEscape(s.Name)
		op := "add"
		if root.Find(entryPtr) != nil {
			op = "replace"
		}
		patch := fmt.Sprintf(`[{"op":%q,"path":%q,"value":%s}]`, op, entryPtr, value)
		if err := root.Patch([]byte(patch)); err != nil {
			return "", fmt.Errorf("writing entry %q: %w", s.Name, err)
		}
	}

	root.Format()
	removeTrailingCommas(&root)
	if !keepJSONC {
		root.Standardize()
	}
	return string(root.Pack()), nil
}

// mergeMCPSettings sets server entries inside an existing settings file
// under the given key using targeted edits, leaving the rest untouched.
func mergeMCPSettings(content, key string, servers []model.MCPServer) (string, error) {
	for _, s := range servers {
		value, err := json.Marshal(mcpEntry(s))
		if err != nil {
			return "", err
		}
		path := key + "." + escapeJSONKey(s.Name)
		if existing := gjson.Get(content, path); existing.Exists() && existing.Raw == string(value) {
			continue // already up to date
		}
		content, err = sjson.SetRaw(content, path, string(value))
		if err != nil {
			return "", fmt.Errorf("setting entry %q: %w", s.Name, err)
		}
	}
	return content, nil
}

// jsonPointerEscape escapes a JSON Pointer token per RFC 6901.
func jsonPointerEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			out = append(out, '~', '0')
		case '/':
			out = append(out, '~', '1')
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}

// escapeJSONKey escapes dots so sjson treats the name as a literal key.
func escapeJSONKey(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// removeTrailingCommas walks the JSONC AST and drops trailing commas.
func removeTrailingCommas(v *hujson.Value) {
	switch vv := v.Value.(type) {
	case *hujson.Object:
		for i := range vv.Members {
			removeTrailingCommas(&vv.Members[i].Name)
			removeTrailingCommas(&vv.Members[i].Value)
		}
		if len(vv.Members) > 0 {
			vv.Members[len(vv.Members)-1].Value.AfterExtra = nil
		}
	case *hujson.Array:
		for i := range vv.Elements {
			removeTrailingCommas(&vv.Elements[i])
		}
		if len(vv.Elements) > 0 {
			vv.Elements[len(vv.Elements)-1].AfterExtra = nil
		}
	}
}
