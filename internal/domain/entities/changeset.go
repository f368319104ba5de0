package entities

import (
	"sync"

	logger "github.com/sirupsen/logrus"
)

// Changeset is the typed view of a list of path changes. Each entity kind is
// classified on first access and cached, so repeated calls return the same
// slice.
type Changeset struct {
	files []PathChange

	cookbookClassifier Classifier
	roleClassifier     Classifier
	databagClassifier  Classifier

	cookbooksOnce sync.Once
	rolesOnce     sync.Once
	databagsOnce  sync.Once

	cookbooks []Entity
	roles     []Entity
	databags  []Entity
}

// NewChangeset builds a changeset over files using the given locations.
// Paths matching an exclude pattern are dropped up front.
func NewChangeset(files []PathChange, locations Locations, log logger.FieldLogger) *Changeset {
	return &Changeset{
		files:              locations.FilterExcluded(files),
		cookbookClassifier: NewCookbookClassifier(locations.CookbookDirs, log),
		roleClassifier:     NewRoleClassifier(locations.RoleDir, log),
		databagClassifier:  NewDatabagClassifier(locations.DatabagDir, log),
	}
}

// Files returns the path changes the changeset was built from.
func (c *Changeset) Files() []PathChange {
	return c.files
}

// Cookbooks returns the cookbook entities.
func (c *Changeset) Cookbooks() []Entity {
	c.cookbooksOnce.Do(func() {
		c.cookbooks = c.cookbookClassifier.Classify(c.files)
	})
	return c.cookbooks
}

// Roles returns the role entities.
func (c *Changeset) Roles() []Entity {
	c.rolesOnce.Do(func() {
		c.roles = c.roleClassifier.Classify(c.files)
	})
	return c.roles
}

// Databags returns the databag item entities.
func (c *Changeset) Databags() []Entity {
	c.databagsOnce.Do(func() {
		c.databags = c.databagClassifier.Classify(c.files)
	})
	return c.databags
}

// IsEmpty reports whether no entity of any kind changed.
func (c *Changeset) IsEmpty() bool {
	return len(c.Cookbooks()) == 0 && len(c.Roles()) == 0 && len(c.Databags()) == 0
}
