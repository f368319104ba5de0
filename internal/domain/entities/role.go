package entities

import (
	"strings"

	logger "github.com/sirupsen/logrus"
)

const roleExtension = ".rb"

// RoleClassifier maps <dir>/<name>.rb files to roles.
type RoleClassifier struct {
	prefix string
	log    logger.FieldLogger
}

// NewRoleClassifier creates a classifier for the given role directory.
func NewRoleClassifier(dir string, log logger.FieldLogger) *RoleClassifier {
	return &RoleClassifier{prefix: normalizeRoot(dir) + "/", log: log}
}

// Classify returns one role per matching change, in input order.
func (c *RoleClassifier) Classify(changes []PathChange) []Entity {
	result := make([]Entity, 0)
	for _, change := range changes {
		name, ok := c.nameFromPath(change.Path)
		if !ok {
			continue
		}
		c.log.Infof("Role %s is %s", name, entityStatus(change.Status))
		result = append(result, NewRole(name, change.Status))
	}
	return result
}

func (c *RoleClassifier) nameFromPath(p string) (string, bool) {
	if !strings.HasPrefix(p, c.prefix) {
		return "", false
	}
	file := p[len(c.prefix):]
	if !strings.HasSuffix(file, roleExtension) {
		c.log.Debugf("[role] %s is not a role file, skipping", p)
		return "", false
	}
	name := strings.TrimSuffix(file, roleExtension)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
