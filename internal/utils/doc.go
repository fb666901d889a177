// Package utils provides a collection of helper functions and utilities for common tasks,
// such as file handling, string normalization, type conversion, and content type validation.
// It is designed to simplify repetitive operations and ensure consistency across the application.
package utils
