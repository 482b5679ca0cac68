package services

import (
	"testing"

	"document-portal-api/models"
)

func TestBuildFolderTreeOrdering(t *testing.T) {
	folders := []models.DocumentFolder{
		{FolderID: 1, Name: "Zeta", DisplayOrder: 1},
		{FolderID: 2, Name: "Alpha", DisplayOrder: 2},
		{FolderID: 3, Name: "Beta", DisplayOrder: 1},
		{FolderID: 4, Name: "Nested", ParentID: intPtr(1)},
	}

	nodes := BuildFolderTree(folders, nil, nil)
	if len(nodes) != 3 {
		t.Fatalf("root nodes = %d, want 3", len(nodes))
	}
	want := []string{"Beta", "Zeta", "Alpha"}
	for i, name := range want {
		if nodes[i].Folder.Name != name {
			t.Errorf("nodes[%d] = %s, want %s", i, nodes[i].Folder.Name, name)
		}
	}
}

func TestBuildFolderTreeGroupsDocuments(t *testing.T) {
	folders := []models.DocumentFolder{
		{FolderID: 1, Name: "Reports"},
		{FolderID: 2, Name: "Scans"},
	}
	documents := []models.Document{
		{DocumentID: 1, FolderID: intPtr(1)},
		{DocumentID: 2, FolderID: intPtr(1)},
		{DocumentID: 3}, // unfiled, never attached to a node
	}

	nodes := BuildFolderTree(folders, documents, nil)
	if len(nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(nodes))
	}
	if len(nodes[0].Documents) != 2 {
		t.Errorf("Reports documents = %d, want 2", len(nodes[0].Documents))
	}
	if nodes[1].Documents == nil || len(nodes[1].Documents) != 0 {
		t.Errorf("Scans documents = %v, want empty non-nil slice", nodes[1].Documents)
	}
}

func TestBuildFolderTreeFiltersByParent(t *testing.T) {
	folders := []models.DocumentFolder{
		{FolderID: 1, Name: "Reports"},
		{FolderID: 2, Name: "2026", ParentID: intPtr(1), Level: 1},
		{FolderID: 3, Name: "2025", ParentID: intPtr(1), Level: 1},
	}

	nodes := BuildFolderTree(folders, nil, intPtr(1))
	if len(nodes) != 2 {
		t.Fatalf("children of 1 = %d, want 2", len(nodes))
	}
	if nodes[0].Folder.Name != "2025" || nodes[1].Folder.Name != "2026" {
		t.Errorf("children = [%s %s], want [2025 2026]", nodes[0].Folder.Name, nodes[1].Folder.Name)
	}
}
