package handlers

import (
	"net/http"
	"testing"

	"github.com/courseland/backend/models"
)

type courseBriefBody struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	ModulesCount int    `json:"modulesCount"`
}

func TestBasketFlow(t *testing.T) {
	r, db, tokens := newTestServer(t)

	creator, _ := createUser(t, db, tokens, "creator", models.RoleTeacher)
	_, token := createUser(t, db, tokens, "buyer", models.RoleUser)

	course := createCourse(t, db, "Course A", creator.ID, models.CategoryFrontend)
	module := createModule(t, db, "Module A")
	if err := db.Create(&models.CourseModule{CourseID: course.ID, ModuleID: module.ID}).Error; err != nil {
		t.Fatalf("failed to link module: %v", err)
	}

	// Empty basket
	w := doJSON(t, r, http.MethodGet, "/basket", token, nil)
	expectStatus(t, w, http.StatusOK)
	var items []courseBriefBody
	decodeBody(t, w, &items)
	if len(items) != 0 {
		t.Fatalf("expected empty basket, got %+v", items)
	}

	// Add
	w = doJSON(t, r, http.MethodPost, "/basket/add", token, map[string]any{"courseId": course.ID})
	expectStatus(t, w, http.StatusCreated)
	var added courseBriefBody
	decodeBody(t, w, &added)
	if added.ID != course.ID || added.ModulesCount != 1 {
		t.Fatalf("unexpected brief: %+v", added)
	}

	// Adding again conflicts
	w = doJSON(t, r, http.MethodPost, "/basket/add", token, map[string]any{"courseId": course.ID})
	expectStatus(t, w, http.StatusConflict)
	if msg := errorMessage(t, w); msg != "Course already in basket" {
		t.Fatalf("unexpected message: %q", msg)
	}

	// Unknown course
	w = doJSON(t, r, http.MethodPost, "/basket/add", token, map[string]any{"courseId": 999})
	expectStatus(t, w, http.StatusNotFound)

	// List shows one item
	w = doJSON(t, r, http.MethodGet, "/basket", token, nil)
	expectStatus(t, w, http.StatusOK)
	decodeBody(t, w, &items)
	if len(items) != 1 || items[0].Title != "Course A" {
		t.Fatalf("unexpected basket: %+v", items)
	}

	// Remove, then removing again is a 404
	expectStatus(t, doJSON(t, r, http.MethodDelete, "/basket/"+itoa(course.ID), token, nil), http.StatusOK)
	w = doJSON(t, r, http.MethodDelete, "/basket/"+itoa(course.ID), token, nil)
	expectStatus(t, w, http.StatusNotFound)
	if msg := errorMessage(t, w); msg != "Course not found in basket" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestBasketClear(t *testing.T) {
	r, db, tokens := newTestServer(t)

	creator, _ := createUser(t, db, tokens, "creator", models.RoleTeacher)
	_, token := createUser(t, db, tokens, "buyer", models.RoleUser)

	c1 := createCourse(t, db, "Course A", creator.ID, models.CategoryFrontend)
	c2 := createCourse(t, db, "Course B", creator.ID, models.CategoryBackend)

	expectStatus(t, doJSON(t, r, http.MethodPost, "/basket/add", token, map[string]any{"courseId": c1.ID}), http.StatusCreated)
	expectStatus(t, doJSON(t, r, http.MethodPost, "/basket/add", token, map[string]any{"courseId": c2.ID}), http.StatusCreated)

	expectStatus(t, doJSON(t, r, http.MethodDelete, "/basket/clear", token, nil), http.StatusOK)

	w := doJSON(t, r, http.MethodGet, "/basket", token, nil)
	expectStatus(t, w, http.StatusOK)
	var items []courseBriefBody
	decodeBody(t, w, &items)
	if len(items) != 0 {
		t.Fatalf("basket should be empty after clear, got %+v", items)
	}
}

func TestBasketIsPerUser(t *testing.T) {
	r, db, tokens := newTestServer(t)

	creator, _ := createUser(t, db, tokens, "creator", models.RoleTeacher)
	_, tokenA := createUser(t, db, tokens, "alice", models.RoleUser)
	_, tokenB := createUser(t, db, tokens, "bob", models.RoleUser)

	course := createCourse(t, db, "Shared Course", creator.ID, models.CategoryDesign)

	expectStatus(t, doJSON(t, r, http.MethodPost, "/basket/add", tokenA, map[string]any{"courseId": course.ID}), http.StatusCreated)

	// Bob can add the same course; uniqueness is per user
	expectStatus(t, doJSON(t, r, http.MethodPost, "/basket/add", tokenB, map[string]any{"courseId": course.ID}), http.StatusCreated)

	w := doJSON(t, r, http.MethodGet, "/basket", tokenB, nil)
	expectStatus(t, w, http.StatusOK)
	var items []courseBriefBody
	decodeBody(t, w, &items)
	if len(items) != 1 {
		t.Fatalf("bob's basket should have one item, got %+v", items)
	}
}

func TestBasketValidation(t *testing.T) {
	r, db, tokens := newTestServer(t)
	_, token := createUser(t, db, tokens, "buyer", models.RoleUser)

	expectStatus(t, doJSON(t, r, http.MethodPost, "/basket/add", token, map[string]any{}), http.StatusBadRequest)
	expectStatus(t, doJSON(t, r, http.MethodPost, "/basket/add", token, map[string]any{"courseId": 0}), http.StatusBadRequest)
}
